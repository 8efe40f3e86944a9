package storage

import (
	"errors"

	"github.com/bytedance/sonic"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
)

// ErrNotFound is returned when a session has no stored state, either because
// it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func encodeState(st *board.State) ([]byte, error) {
	return sonic.Marshal(st)
}

func decodeState(data []byte) (*board.State, error) {
	st := board.NewState()
	if err := sonic.Unmarshal(data, st); err != nil {
		return nil, err
	}
	if st.Tasks == nil {
		st.ReplaceTasks(nil)
	}
	return st, nil
}
