//go:build !unix

package file

// No advisory locking outside unix; a single process is assumed.
type fileLock struct{}

func acquireLock(string, bool) (*fileLock, error) {
	return &fileLock{}, nil
}

func (l *fileLock) release() error {
	return nil
}
