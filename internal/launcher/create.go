package launcher

import (
	"context"

	"pump_launch/internal/common"
	"pump_launch/internal/model"
	"pump_launch/internal/wallet"

	"github.com/sirupsen/logrus"
)

// CreateToken 创建代币（可附带首次买入），确认后记录发行
func (l *Launcher) CreateToken(ctx context.Context, caller wallet.Signer, req *model.CreateTokenRequest) (*model.TransactionResult, error) {
	release, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	user := caller.PublicKey()
	plan, err := l.builder.BuildCreate(req, user)
	if err != nil {
		return nil, err
	}

	mint := plan.Instruction.Mint
	log := common.Log.WithFields(logrus.Fields{
		"mint":   mint.String(),
		"symbol": req.Symbol,
		"mayhem": req.MayhemMode,
	})
	log.Infof("开始创建代币 %s (%s)", req.Name, req.Symbol)

	sig, err := l.submitter.Submit(ctx, plan.Instructions, user, caller, wallet.NewKeypair(plan.Mint))
	if err != nil {
		log.WithError(err).Error("创建代币失败")
		return nil, err
	}

	result := &model.TransactionResult{Signature: sig, CreatedMint: &mint}
	log.WithField("signature", sig.String()).Info("代币创建成功")

	recordReq := *req
	recordReq.Creator = plan.Instruction.Input.Creator
	l.recordLaunch(model.NewLaunchRecord(&recordReq, result, l.viewBase))
	return result, nil
}

// recordLaunch 记录失败不影响已确认的交易
func (l *Launcher) recordLaunch(record *model.LaunchRecord) {
	if l.queue == nil {
		common.Log.WithField("mint", record.Mint).Debug("未配置记录存储，跳过发行记录")
		return
	}
	if !l.queue.SendMessage(model.NewLaunchMessage(record)) {
		common.Log.WithField("mint", record.Mint).Error("发行记录队列已满，记录未保存")
	}
}
