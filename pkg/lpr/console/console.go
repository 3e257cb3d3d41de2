package console

import (
	"fmt"
	"io"
	"strings"

	"kgeyst.com/platereader/pkg/common"
)

const (
	Prompt      = "Enter the path to the image (or 'exit' to quit): "
	exitCommand = "exit"
)

// LineReader reads one line of user input per call; io.EOF (or any other error, such as Ctrl-C) ends the session.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

type PlateRecognizer interface {
	RecognizePlate(location string) (string, error)
}

// Run reads image locations until "exit" (in any case) or end of input, printing either the recognized plate or
// "Error: ..." for each of them. A failed request (an empty path included) never ends the session.
func Run(reader LineReader, out io.Writer, recognizer PlateRecognizer) error {
	for {
		line, err := reader.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			return nil
		}
		location := common.CleanInputPath(line)
		if strings.EqualFold(location, exitCommand) {
			return nil
		}
		plate, err := recognizer.RecognizePlate(location)
		if err != nil {
			_, err = fmt.Fprintf(out, "Error: %s\n", err)
		} else {
			_, err = fmt.Fprintln(out, plate)
		}
		if err != nil {
			return err
		}
	}
}
