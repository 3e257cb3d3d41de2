package irc

import (
	"strings"

	"kgeyst.com/platereader/pkg/common"
)

type PlateRecognizer interface {
	RecognizePlate(location string) (string, error)
}

type URLFinder interface {
	FindURLs(str string) []string
}

// ReplyFunc sends `text` back to the channel the request came from.
type ReplyFunc func(text string)

// Handler turns chat messages of the form "<botName>[,] <image URL>" into recognition jobs. Jobs go through a single
// JobQueue, so at most one image is processed at a time no matter how many users post.
type Handler struct {
	botName    string
	urlFinder  URLFinder
	recognizer PlateRecognizer
	jobQueue   *common.JobQueue
}

func NewHandler(botName string, urlFinder URLFinder, recognizer PlateRecognizer, jobQueue *common.JobQueue) *Handler {
	return &Handler{
		botName:    botName,
		urlFinder:  urlFinder,
		recognizer: recognizer,
		jobQueue:   jobQueue,
	}
}

// ParseRequest returns the image URL the message asks to read; false if the message isn't addressed to the bot or has
// no image URL in it.
func (h *Handler) ParseRequest(content string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(content), strings.ToLower(h.botName)) {
		return "", false
	}
	what := strings.TrimSpace(content[len(h.botName):])
	what = strings.TrimSpace(strings.TrimLeft(what, ",:"))
	for _, url := range h.urlFinder.FindURLs(what) {
		if common.IsImageFormat(url) {
			return url, true
		}
	}
	return "", false
}

// Handle enqueues a recognition job if `content` is a request; returns false otherwise, or if the queue is stopped.
// `from` is the nick the reply is addressed to.
func (h *Handler) Handle(from, content string, reply ReplyFunc) bool {
	url, ok := h.ParseRequest(content)
	if !ok {
		return false
	}
	return h.jobQueue.Enqueue(func() error {
		plate, err := h.recognizer.RecognizePlate(url)
		if err != nil {
			reply(from + " Error: " + err.Error())
			return err
		}
		reply(from + " " + plate)
		return nil
	})
}
