package filestore

import (
	"bufio"
	"io"
	"os"

	"github.com/battlesnakeio/snake/pb"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	io.Writer
	Flush() error
	Close() error
}

type fileWriter struct {
	*bufio.Writer
	f *os.File
}

func (w *fileWriter) Close() error {
	if err := w.Writer.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func requireSaveDir(directory string) error {
	return os.MkdirAll(directory, 0775)
}

func writeSession(w writer, s *pb.Session) error {
	if err := pb.WriteDelimited(w, s); err != nil {
		return err
	}
	return w.Flush()
}

// writeFrame flushes after every frame so a crash loses at most the frame
// being written.
func writeFrame(w writer, f *pb.Frame) error {
	if err := pb.WriteDelimited(w, f); err != nil {
		return err
	}
	return w.Flush()
}

func appendOnlyFileWriter(directory, id string) (writer, error) {
	if err := requireSaveDir(directory); err != nil {
		return nil, err
	}

	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE | os.O_EXCL
	f, err := os.OpenFile(Path(directory, id), flags, 0644)
	if err != nil {
		return nil, err
	}
	return &fileWriter{Writer: bufio.NewWriter(f), f: f}, nil
}
