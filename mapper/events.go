package mapper

import (
	"reflect"
	"time"
)

// Events are optional observation hooks. Nil hooks are not called.
type Events struct {
	// CacheHit and CacheMiss report metadata lookups for a type pair.
	CacheHit  func(a, b reflect.Type)
	CacheMiss func(a, b reflect.Type)
	// CacheEvict reports a pair pushed out of the metadata cache.
	CacheEvict func(a, b reflect.Type)

	// FieldSkipped is called for every correspondence that was not applied.
	// reason is one of the Skip* constants.
	FieldSkipped func(src, dst reflect.Type, path, reason string)

	// Done is called once per Map, MapInto or MapCollection call, also on
	// error.
	Done func(stats Stats)
}

// Skip reasons reported through Events.FieldSkipped.
const (
	SkipUnreadable = "unreadable"
	SkipNil        = "nil"
	SkipUnwritable = "unwritable"
)

// Stats summarises one top level call.
type Stats struct {
	Source, Target reflect.Type
	FieldsWritten  int // properties written, nested elements included
	FieldsSkipped  int
	Elements       int // collection elements mapped
	Duration       time.Duration
	Err            error
}

func (e *Events) cacheHit(a, b reflect.Type) {
	if e.CacheHit != nil {
		e.CacheHit(a, b)
	}
}

func (e *Events) cacheMiss(a, b reflect.Type) {
	if e.CacheMiss != nil {
		e.CacheMiss(a, b)
	}
}

func (e *Events) cacheEvict(a, b reflect.Type) {
	if e.CacheEvict != nil {
		e.CacheEvict(a, b)
	}
}

func (e *Events) fieldSkipped(src, dst reflect.Type, path, reason string) {
	if e.FieldSkipped != nil {
		e.FieldSkipped(src, dst, path, reason)
	}
}

func (e *Events) done(stats Stats) {
	if e.Done != nil {
		e.Done(stats)
	}
}
