package filestore

import (
	"bufio"
	"io"
	"os"

	"github.com/battlesnakeio/snake/pb"
	"github.com/pkg/errors"
)

// Recording is a session read back from disk.
type Recording struct {
	Session *pb.Session
	Frames  []*pb.Frame
}

func readRecording(r io.Reader) (*Recording, error) {
	reader := bufio.NewReader(r)

	session := &pb.Session{}
	if err := pb.ReadDelimited(reader, session); err != nil {
		if err == io.EOF {
			return nil, errors.New("recording is empty")
		}
		return nil, errors.Wrap(err, "unable to read session header")
	}

	frames := []*pb.Frame{}
	for {
		f := &pb.Frame{}
		err := pb.ReadDelimited(reader, f)
		if err == io.EOF {
			break
		}
		if err != nil {
			// A session that was cut short leaves a partial last frame. Keep
			// what was readable.
			if len(frames) > 0 {
				break
			}
			return nil, errors.Wrap(err, "unable to read frame")
		}
		frames = append(frames, f)
	}

	return &Recording{Session: session, Frames: frames}, nil
}

// ReadFile loads the recording stored at path.
func ReadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := readRecording(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return rec, nil
}

// ReadSession loads the recording of session id from directory.
func ReadSession(directory, id string) (*Recording, error) {
	if directory == "" {
		directory = DefaultDir()
	}
	return ReadFile(Path(directory, id))
}
