package mapper

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"bimapper/accessor"
	"bimapper/catalog"
	"bimapper/decl"
	"bimapper/internal/common"
	"bimapper/meta"
	"bimapper/primitive"
)

// Mapper maps struct instances onto each other.
type Mapper struct {
	source   decl.Source
	catalog  *catalog.Catalog
	accessor accessor.PropertyAccessor
	capacity int
	logger   *slog.Logger
	events   Events
	policy   ScalarPolicy
	iterable meta.Iterable

	reader *meta.Reader
	cache  *meta.Cache
}

// New returns a Mapper reading struct tags, with an empty catalogue and the
// reflection accessor, unless options say otherwise.
func New(opts ...Option) (*Mapper, error) {
	m := &Mapper{
		source:   decl.Tags{},
		catalog:  catalog.New(),
		accessor: accessor.New(primitive.CategoryDefault),
		capacity: meta.DefaultCacheCapacity,
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.catalog == nil {
		m.catalog = catalog.New()
	}

	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}

	if m.source == nil || m.accessor == nil {
		return nil, errors.New("mapper: source and accessor must not be nil")
	}

	cache, err := meta.NewCache(m.capacity, func(md *meta.Metadata) {
		m.logger.Debug("metadata evicted", "a", md.A, "b", md.B)
		m.events.cacheEvict(md.A, md.B)
	})
	if err != nil {
		return nil, fmt.Errorf("metadata cache: %w", err)
	}

	m.cache = cache

	var ropts []meta.ReaderOption
	if m.iterable != nil {
		ropts = append(ropts, meta.WithIterable(m.iterable))
	}

	m.reader = meta.NewReader(m.source, m.catalog, ropts...)

	return m, nil
}

// Map maps src into target and returns the target instance. target is a type
// name resolved through the catalogue, a reflect.Type, or a pointer to a
// struct which is filled in place. A typed nil pointer stands for its type.
func (m *Mapper) Map(src, target any) (any, error) {
	dst, err := m.target(target)
	if err != nil {
		return nil, err
	}

	s := m.begin()
	defer s.end(&err)

	if err = s.mapObject(reflect.ValueOf(src), dst); err != nil {
		return nil, err
	}

	return dst.Interface(), nil
}

// MapInto maps src into the struct pointed to by dst.
func (m *Mapper) MapInto(src, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return &Error{Kind: InstantiationFailure, Err: fmt.Errorf("destination must be a non-nil pointer, got %T", dst)}
	}

	_, err := m.Map(src, dst)

	return err
}

// To maps src into a new T.
func To[T any](m *Mapper, src any) (*T, error) {
	dst := new(T)
	if err := m.MapInto(src, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

// MapCollection maps every element of a slice, array or map into elem (a
// type name or reflect.Type). The result has the shape of src with *elem
// values; a nil collection yields an empty one.
func (m *Mapper) MapCollection(src, elem any) (out any, err error) {
	et, err := m.elemType(elem)
	if err != nil {
		return nil, err
	}

	v := reflect.ValueOf(src)
	if !v.IsValid() {
		return reflect.MakeSlice(reflect.SliceOf(reflect.PointerTo(et)), 0, 0).Interface(), nil
	}

	s := m.begin()
	defer s.end(&err)

	res, err := s.mapCollection(v, nil, et)
	if err != nil {
		return nil, withContext(err, ConfigurationFailure, v.Type(), et, "", nil)
	}

	return res.Interface(), nil
}

// Metadata returns the cached correspondences of a type pair, building them
// on first use.
func (m *Mapper) Metadata(a, b reflect.Type) (*meta.Metadata, error) {
	return m.metadata(a, b)
}

func (m *Mapper) metadata(a, b reflect.Type) (*meta.Metadata, error) {
	if md, ok := m.cache.Get(a, b); ok {
		m.events.cacheHit(a, b)
		return md, nil
	}

	m.logger.Debug("metadata cache miss", "a", a, "b", b)
	m.events.cacheMiss(a, b)

	md, err := m.reader.Build(a, b)
	if err != nil {
		return nil, &Error{Kind: ReflectionFailure, Source: a, Target: b, Err: err}
	}

	m.cache.Add(md)

	return md, nil
}

// target turns the Map target argument into a pointer to a struct.
func (m *Mapper) target(target any) (reflect.Value, error) {
	var (
		v   reflect.Value
		err error
	)

	switch t := target.(type) {
	case nil:
		err = errors.New("nil target")
	case string:
		v, err = m.catalog.New(t)
	case reflect.Type:
		v, err = catalog.Instantiate(t)
	default:
		rv := reflect.ValueOf(target)

		switch {
		case rv.Kind() != reflect.Pointer:
			err = fmt.Errorf("target must be a pointer, got %T", target)
		case rv.IsNil():
			v, err = catalog.Instantiate(rv.Type())
		case rv.Elem().Kind() != reflect.Struct:
			err = fmt.Errorf("%w: %T", catalog.ErrNotInstantiable, target)
		default:
			v = rv
		}
	}

	if err != nil {
		return reflect.Value{}, &Error{Kind: InstantiationFailure, Err: err}
	}

	return v, nil
}

func (m *Mapper) elemType(elem any) (reflect.Type, error) {
	var (
		t   reflect.Type
		err error
	)

	switch e := elem.(type) {
	case string:
		t, err = m.catalog.Resolve(e)
	case reflect.Type:
		t = e
	default:
		err = fmt.Errorf("element type must be a name or reflect.Type, got %T", elem)
	}

	if err == nil {
		t, err = decl.StructOf(t)
	}

	if err != nil {
		return nil, &Error{Kind: InstantiationFailure, Err: err}
	}

	return t, nil
}

// session is the state of one top level call.
type session struct {
	m *Mapper
	// inflight holds the element types being mapped, released on every exit
	inflight map[reflect.Type]struct{}
	stats    Stats
	started  time.Time
}

func (m *Mapper) begin() *session {
	return &session{
		m:        m,
		inflight: make(map[reflect.Type]struct{}),
		started:  time.Now(),
	}
}

func (s *session) end(err *error) {
	s.stats.Duration = time.Since(s.started)
	s.stats.Err = *err
	s.m.events.done(s.stats)
}

func (s *session) skip(src, dst reflect.Type, path, reason string) {
	s.stats.FieldsSkipped++
	s.m.logger.Debug("property skipped", "source", src, "target", dst, "path", path, "reason", reason)
	s.m.events.fieldSkipped(src, dst, path, reason)
}

// mapObject maps the struct behind src into the struct pointed to by dst.
func (s *session) mapObject(src, dst reflect.Value) error {
	for src.IsValid() && (src.Kind() == reflect.Pointer || src.Kind() == reflect.Interface) && !src.IsNil() {
		src = src.Elem()
	}

	dstType := dst.Type().Elem()

	if !src.IsValid() || src.Kind() != reflect.Struct {
		return &Error{Kind: ReflectionFailure, Target: dstType, Err: fmt.Errorf("%w: source %s", decl.ErrNotStruct, describe(src))}
	}

	srcType := src.Type()
	if s.stats.Source == nil {
		s.stats.Source, s.stats.Target = srcType, dstType
	}

	md, err := s.m.metadata(srcType, dstType)
	if err != nil {
		return err
	}

	if !md.Valid {
		return &Error{
			Kind:   ReciprocityFailure,
			Source: srcType,
			Target: dstType,
			Err:    fmt.Errorf("%s and %s must declare each other as mappable", srcType, dstType),
		}
	}

	cs, _ := md.Oriented(srcType, dstType)
	for _, c := range cs {
		if err := s.apply(c, src, dst); err != nil {
			return err
		}
	}

	return nil
}

// apply copies one correspondence.
func (s *session) apply(c meta.Correspondence, src, dst reflect.Value) error {
	acc := s.m.accessor
	srcType, dstType := src.Type(), dst.Type().Elem()

	v, ok := acc.Read(src, c.SourcePath)
	if !ok {
		s.skip(srcType, dstType, c.TargetPath, SkipUnreadable)
		return nil
	}

	if accessor.IsNil(v) {
		s.skip(srcType, dstType, c.TargetPath, SkipNil)
		return nil
	}

	if c.IsArray {
		declared, _ := acc.TypeOf(dst, c.TargetPath)

		out, err := s.mapCollection(v, declared, c.TargetElem)
		if err != nil {
			return withContext(err, ConfigurationFailure, srcType, dstType, c.TargetPath, nil)
		}

		v = out
	}

	if err := s.materialize(dst, c.TargetPath); err != nil {
		return withContext(err, ConfigurationFailure, srcType, dstType, c.TargetPath, nil)
	}

	if !acc.IsWritable(dst, c.TargetPath) {
		s.skip(srcType, dstType, c.TargetPath, SkipUnwritable)
		return nil
	}

	err := acc.Write(dst, c.TargetPath, v)

	switch {
	case err == nil:
		s.stats.FieldsWritten++
	case errors.Is(err, accessor.ErrUnwritable):
		s.skip(srcType, dstType, c.TargetPath, SkipUnwritable)
	default:
		return &Error{Kind: PropertyWriteFailure, Source: srcType, Target: dstType, Path: c.TargetPath, Err: err}
	}

	return nil
}

// materialize fills nil pointer segments of a dotted path with blank structs
// of their declared type.
func (s *session) materialize(dst reflect.Value, path string) error {
	if !common.IsNested(path) {
		return nil
	}

	acc := s.m.accessor
	segs := strings.Split(path, ".")

	for i := 1; i < len(segs); i++ {
		prefix := strings.Join(segs[:i], ".")

		if cur, ok := acc.Read(dst, prefix); ok && !accessor.IsNil(cur) {
			continue
		}

		t, ok := acc.TypeOf(dst, prefix)
		if !ok {
			return fmt.Errorf("cannot determine the type of %s", prefix)
		}

		blank, err := catalog.Instantiate(t)
		if err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}

		if err := acc.Write(dst, prefix, blank); err != nil {
			if errors.Is(err, accessor.ErrUnwritable) {
				// the final write is skipped as unwritable
				return nil
			}

			return &Error{Kind: PropertyWriteFailure, Target: dst.Type().Elem(), Path: prefix, Err: err}
		}
	}

	return nil
}

func describe(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	if accessor.IsNil(v) {
		return "nil " + v.Type().String()
	}

	return v.Type().String()
}
