package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"pump_launch/internal/common"
	"pump_launch/internal/config"
	"pump_launch/internal/launcher"
	"pump_launch/internal/model"
	"pump_launch/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// 命令行参数
var (
	envFile     string
	action      string
	name        string
	symbol      string
	description string
	metadataURI string
	imagePath   string
	twitter     string
	website     string
	mint        string
	amount      string
	minOut      string
	slippageBps uint64
	mayhem      bool
)

func init() {
	flag.StringVar(&envFile, "env", ".env", "环境变量文件")
	flag.StringVar(&action, "action", string(common.CREATE), "操作类型 (create或buy)")
	flag.StringVar(&name, "name", "", "代币名称")
	flag.StringVar(&symbol, "symbol", "", "代币符号")
	flag.StringVar(&description, "description", "", "代币描述")
	flag.StringVar(&metadataURI, "uri", "", "元数据地址，留空时根据 -image 上传")
	flag.StringVar(&imagePath, "image", "", "本地图片路径")
	flag.StringVar(&twitter, "twitter", "", "Twitter链接")
	flag.StringVar(&website, "website", "", "网站链接")
	flag.StringVar(&mint, "mint", "", "代币合约地址 (buy)")
	flag.StringVar(&amount, "amount", "", "花费的SOL数量，create时为首次买入")
	flag.StringVar(&minOut, "minout", "", "最少获得的代币数量")
	flag.Uint64Var(&slippageBps, "slippage", 500, "未指定 -minout 时的滑点 (基点)")
	flag.BoolVar(&mayhem, "mayhem", false, "是否启用 mayhem 模式")
}

func main() {
	// 解析命令行参数
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg.LogDir = ""
	if err := common.ConfigureLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	signer, err := wallet.Load(cfg.PrivateKey, cfg.KeypairPath)
	if err != nil {
		common.Log.Fatalf("加载钱包失败: %v", err)
	}

	ctx := context.Background()
	l, err := launcher.Setup(ctx, cfg)
	if err != nil {
		common.Log.Fatalf("初始化失败: %v", err)
	}
	defer l.Close()

	var result *model.TransactionResult
	switch common.TradeAction(action) {
	case common.CREATE:
		result, err = create(ctx, l, signer)
	case common.BUY:
		result, err = buy(ctx, l, signer)
	default:
		err = fmt.Errorf("不支持的操作: %s", action)
	}
	if err != nil {
		l.Close()
		common.Log.Fatalf("%s 失败: %v", action, err)
	}

	fmt.Printf("交易已确认! 签名: %s\n", result.Signature)
	fmt.Printf("查看交易: https://solscan.io/tx/%s\n", result.Signature)
	if result.CreatedMint != nil {
		fmt.Printf("代币地址: %s\n", result.CreatedMint)
		fmt.Printf("查看代币: %s%s\n", cfg.ExternalViewBase, result.CreatedMint)
	}
}

func create(ctx context.Context, l *launcher.Launcher, signer wallet.Signer) (*model.TransactionResult, error) {
	imageURL := ""
	if metadataURI == "" {
		if imagePath == "" {
			return nil, fmt.Errorf("必须提供 -uri 或 -image")
		}
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("读取图片失败: %w", err)
		}
		image, err := l.UploadImage(ctx, filepath.Base(imagePath), mime.TypeByExtension(filepath.Ext(imagePath)), data)
		if err != nil {
			return nil, err
		}
		imageURL = image.URL

		metadata, err := l.PublishMetadata(ctx, &launcher.MetadataRequest{
			Name:        name,
			Symbol:      symbol,
			Description: description,
			ImageURL:    imageURL,
			Twitter:     twitter,
			Website:     website,
		})
		if err != nil {
			return nil, err
		}
		metadataURI = metadata.URL
		common.Log.Infof("元数据已上传: %s", metadataURI)
	}

	req := &model.CreateTokenRequest{
		Name:        name,
		Symbol:      symbol,
		MetadataURI: metadataURI,
		ImageURI:    imageURL,
		MayhemMode:  mayhem,
	}
	if amount != "" {
		req.InitialBuy = &model.InitialBuy{NativeAmountIn: amount, MinimumTokensOut: minOut}
	}
	return l.CreateToken(ctx, signer, req)
}

func buy(ctx context.Context, l *launcher.Launcher, signer wallet.Signer) (*model.TransactionResult, error) {
	target, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, fmt.Errorf("无效的代币地址: %w", err)
	}
	return l.BuyTokens(ctx, signer, &model.BuyTokenRequest{
		TargetMint:       target,
		NativeAmountIn:   amount,
		MinimumTokensOut: minOut,
		SlippageBps:      slippageBps,
	})
}
