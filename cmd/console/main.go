package main

import (
	"os"

	"github.com/chzyer/readline"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/api"
	"kgeyst.com/platereader/pkg/lpr/console"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfigIfExists("config.yaml")
	if err != nil {
		return err
	}
	logger := api.NewLogger(config)
	plateReader, err := api.NewAPI(config, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = plateReader.Close()
	}()
	rl, err := readline.NewEx(&readline.Config{
		Prompt: console.Prompt,
		Stdout: os.Stdout,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	return console.Run(rl, rl.Stdout(), plateReader)
}
