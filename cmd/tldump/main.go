// tldump 解码 TL 负载并逐行输出 JSON，用于排查线上抓取的负载。
//
// 用法：
//
//	tldump [--config tl.yaml] [--hex] [--tolerate-unknown] [file ...]
//
// 未给出文件时从标准输入读取一个负载。
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lk2023060901/danmu-tl-go/application"
	"github.com/lk2023060901/danmu-tl-go/internal/network/codec"
	"github.com/lk2023060901/danmu-tl-go/internal/network/router"
	"github.com/lk2023060901/danmu-tl-go/internal/network/serializer"
	"github.com/lk2023060901/danmu-tl-go/pkg/log"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/api"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tldump:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := pflag.NewFlagSet("tldump", pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (yaml/json)")
	hexInput := fs.Bool("hex", false, "input files contain hex text")
	tolerate := fs.Bool("tolerate-unknown", false, "skip payloads with unknown constructors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app := application.New(api.Registry())
	if err := app.Run(*configPath, router.Options{TolerateUnknown: *tolerate}); err != nil {
		return err
	}
	defer app.Close()

	payloads, err := readPayloads(fs.Args(), stdin, *hexInput)
	if err != nil {
		return err
	}

	// 为注册表中的每个构造器挂上同一个输出 Handler。
	var js serializer.JSONSerializer
	dump := func(ctx context.Context, obj tl.Object) error {
		out, err := js.Marshal(codec.JSONTree(obj))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", out)
		return err
	}
	r := app.Router()
	for _, id := range api.Registry().IDs().Collect() {
		if err := r.Register(id, dump); err != nil {
			return err
		}
	}

	ctx := context.Background()
	for i, payload := range payloads {
		if err := r.Handle(ctx, payload); err != nil {
			log.Warn("payload failed", zap.Int("index", i), zap.Error(err))
			return errors.Wrapf(err, "payload %d", i)
		}
	}
	return nil
}

func readPayloads(files []string, stdin io.Reader, hexInput bool) ([][]byte, error) {
	var raws [][]byte
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		raws = append(raws, data)
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		raws = append(raws, data)
	}
	if !hexInput {
		return raws, nil
	}
	for i, raw := range raws {
		data, err := hex.DecodeString(string(bytes.Join(bytes.Fields(raw), nil)))
		if err != nil {
			return nil, errors.Wrapf(err, "payload %d", i)
		}
		raws[i] = data
	}
	return raws, nil
}
