package db

import "errors"

// ErrCorrupt signals a stored value that no longer decodes.
var ErrCorrupt = errors.New("db: corrupt stored value")

// Op constants map to Valkey/Redis command names (or SQL statements) for error context.
const (
	OpPing    = "PING"
	OpGet     = "GET"
	OpSet     = "SET"
	OpIncr    = "INCR"
	OpExpire  = "EXPIRE"
	OpHSet    = "HSET"
	OpHGetAll = "HGETALL"
	OpHDel    = "HDEL"
	OpRPush   = "RPUSH"
	OpLRange  = "LRANGE"
	OpBegin   = "BEGIN"
	OpCommit  = "COMMIT"
	OpQuery   = "SELECT"
	OpInsert  = "INSERT"
	OpDelete  = "DELETE"
	OpMigrate = "MIGRATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
