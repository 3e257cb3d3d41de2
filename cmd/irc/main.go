package main

import (
	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/api"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/web"
	"kgeyst.com/platereader/pkg/lpr/irc"
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
	botName := config.GetStringOrDefault("botName", "PlateReader")
	roomName := config.GetStringOrDefault("roomName", "plates")
	serverName := config.GetStringOrDefault("serverName", "irc.euirc.net:6667")
	logger := api.NewLogger(config)
	plateReader, err := api.NewAPI(config, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = plateReader.Close()
	}()
	jobQueue := common.NewJobQueue(logger)
	defer jobQueue.Stop()
	handler := irc.NewHandler(botName, web.NewURLFinder(), plateReader, jobQueue)
	ircBot, err := hbot.NewBot(serverName, botName)
	if err != nil {
		return err
	}
	var trigger = hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return m.Command == "PRIVMSG" && len(m.To) > 0 && m.To[0] == '#'
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			return handler.Handle(m.From, m.Content, func(text string) {
				b.Reply(m, text)
			})
		},
	}
	ircBot.AddTrigger(trigger)
	ircBot.Channels = []string{"#" + roomName}
	ircBot.Run()
	return nil
}
