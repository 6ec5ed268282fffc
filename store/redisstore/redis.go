// Package redisstore keeps sessions and frames in redis so spectators in
// other processes can follow a game. Every key expires after the configured
// TTL; nothing is kept once a session goes stale.
package redisstore

import (
	"context"
	"time"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/battlesnakeio/snake/store"
	"github.com/go-redis/redis"
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Store is a redis backed store.Store.
type Store struct {
	client    *redis.Client
	ttl       time.Duration
	maxFrames int
}

// NewStore will create a new instance of an underlying redis client, so it
// should not be re-created across "threads".
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client is immediately tested for connectivity.
func NewStore(connectURL string, ttl time.Duration, maxFrames int) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client, ttl: ttl, maxFrames: maxFrames}, nil
}

// Close closes the underlying redis client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

func sessionKey(id string) string { return "snake:session:" + id }
func framesKey(id string) string  { return "snake:frames:" + id }
func pushedKey(id string) string  { return "snake:pushed:" + id }

// CreateSession stores a new session, failing if the id is already taken.
func (rs *Store) CreateSession(c context.Context, s *pb.Session) error {
	data, err := proto.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "unable to marshal session")
	}
	ok, err := rs.client.SetNX(sessionKey(s.ID), data, rs.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "unable to create session")
	}
	if !ok {
		return store.ErrSessionExists
	}
	return nil
}

// GetSession will fetch the session.
func (rs *Store) GetSession(c context.Context, id string) (*pb.Session, error) {
	data, err := rs.client.Get(sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to get session")
	}

	s := &pb.Session{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal session")
	}
	return s, nil
}

// SetSessionStatus updates the status of a session and refreshes its expiry.
func (rs *Store) SetSessionStatus(c context.Context, id string, status rules.SessionStatus) error {
	s, err := rs.GetSession(c, id)
	if err != nil {
		return err
	}
	s.Status = string(status)

	data, err := proto.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "unable to marshal session")
	}
	return errors.Wrap(rs.client.Set(sessionKey(id), data, rs.ttl).Err(), "unable to set session status")
}

func (rs *Store) requireSession(id string) error {
	n, err := rs.client.Exists(sessionKey(id)).Result()
	if err != nil {
		return errors.Wrap(err, "unable to check session")
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// PushFrame will push a frame onto the list of frames, dropping the oldest
// frames beyond the configured maximum. A counter of every push made for the
// session gives the frame its Seq.
func (rs *Store) PushFrame(c context.Context, id string, f *pb.Frame) error {
	if err := rs.requireSession(id); err != nil {
		return err
	}
	pushed, err := rs.client.Incr(pushedKey(id)).Result()
	if err != nil {
		return errors.Wrap(err, "unable to count frame")
	}
	f = proto.Clone(f).(*pb.Frame)
	f.Seq = pushed - 1
	data, err := proto.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "unable to marshal frame")
	}

	key := framesKey(id)
	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.RPush(key, data)
		if rs.maxFrames > 0 {
			pipe.LTrim(key, int64(-rs.maxFrames), -1)
		}
		pipe.Expire(key, rs.ttl)
		pipe.Expire(pushedKey(id), rs.ttl)
		return nil
	})
	return errors.Wrap(err, "unable to push frame")
}

// ListFrames will list frames by an offset and limit, it supports negative
// offset. A push that trims the list between counting and reading shifts
// the range, so the read is retried when the first frame is not the one
// asked for.
func (rs *Store) ListFrames(c context.Context, id string, limit, offset int) ([]*pb.Frame, error) {
	if err := rs.requireSession(id); err != nil {
		return nil, err
	}

	key := framesKey(id)
	for attempt := 0; ; attempt++ {
		n, first, err := rs.counts(id)
		if err != nil {
			return nil, err
		}

		start, stop, ok := window(n, first, limit, offset)
		if !ok {
			return []*pb.Frame{}, nil
		}
		raw, err := rs.client.LRange(key, int64(start), int64(stop)).Result()
		if err != nil {
			return nil, errors.Wrap(err, "unable to list frames")
		}

		frames := make([]*pb.Frame, 0, len(raw))
		for _, r := range raw {
			f := &pb.Frame{}
			if err := proto.Unmarshal([]byte(r), f); err != nil {
				return nil, errors.Wrap(err, "unable to unmarshal frame")
			}
			// The counter is bumped before the push lands.
			if offset >= 0 && f.Seq < int64(offset) {
				continue
			}
			frames = append(frames, f)
		}
		if len(frames) == 0 || frames[0].Seq == int64(first+start) || attempt == 2 {
			return frames, nil
		}
	}
}

// counts returns the length of the frame list and the Seq of its first frame.
func (rs *Store) counts(id string) (n, first int, err error) {
	var llen *redis.IntCmd
	var pushed *redis.StringCmd
	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		llen = pipe.LLen(framesKey(id))
		pushed = pipe.Get(pushedKey(id))
		return nil
	})
	if err != nil && err != redis.Nil {
		return 0, 0, errors.Wrap(err, "unable to count frames")
	}
	total, err := pushed.Int64()
	if err != nil && err != redis.Nil {
		return 0, 0, errors.Wrap(err, "unable to read frame counter")
	}
	return int(llen.Val()), int(total - llen.Val()), nil
}

// LatestFrame returns the newest frame, or nil if there is none yet.
func (rs *Store) LatestFrame(c context.Context, id string) (*pb.Frame, error) {
	if err := rs.requireSession(id); err != nil {
		return nil, err
	}

	data, err := rs.client.LIndex(framesKey(id), -1).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to get latest frame")
	}

	f := &pb.Frame{}
	if err := proto.Unmarshal(data, f); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal frame")
	}
	return f, nil
}

// window turns limit/offset paging into an inclusive LRANGE range over a
// list of n frames whose first frame has Seq first.
func window(n, first, limit, offset int) (start, stop int, ok bool) {
	if offset < 0 {
		offset = n + offset
	} else {
		offset -= first
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= n || limit <= 0 {
		return 0, 0, false
	}
	end := offset + limit
	if end > n || end < 0 {
		end = n
	}
	return offset, end - 1, true
}
