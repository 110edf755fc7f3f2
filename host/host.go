package host

import (
	"context"
	"fmt"
	"math"

	"github.com/npillmayer/unistring"
	"github.com/npillmayer/unistring/uax11"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// DefaultModuleName is the name guests import the functions from.
const DefaultModuleName = "unistring"

// Option configures a host module.
type Option func(*Module)

// WithModuleName sets the name under which the host module is registered.
func WithModuleName(name string) Option {
	return func(m *Module) {
		m.name = name
	}
}

// WithLogger sets the logger for the host module. Default is Logger().
func WithLogger(l *zap.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithContext sets the typesetting context for u8_strwidth.
// Default is uax11.LatinContext.
func WithContext(ctx *uax11.Context) Option {
	return func(m *Module) {
		if ctx != nil {
			m.width = ctx
		}
	}
}

// Module holds the configuration of a host module and implements its
// functions.
type Module struct {
	name  string
	log   *zap.Logger
	width *uax11.Context
}

// New creates a host module configuration. Use Instantiate to register it
// with a runtime.
func New(opts ...Option) *Module {
	m := &Module{
		name:  DefaultModuleName,
		log:   Logger(),
		width: uax11.LatinContext,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name guests import from.
func (m *Module) Name() string {
	return m.name
}

// funcDef defines an exported host function.
type funcDef struct {
	name    string
	handler api.GoModuleFunc
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32  = []api.ValueType{api.ValueTypeI32}
	i32s = []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}
)

func (m *Module) funcs() []funcDef {
	return []funcDef{
		{"u8_strlen", m.strlen, i32, i32},
		{"u8_mbsnlen", m.mbsnlen, i32s, i32},
		{"u8_strwidth", m.strwidth, i32s, i32},
		{"u8_mblen", m.mblen, i32s, i32},
		{"u8_bytelen", m.bytelen, i32, i32},
	}
}

// Instantiate registers a host module configured by opts with rt. Closing
// the returned module unregisters it.
func Instantiate(ctx context.Context, rt wazero.Runtime, opts ...Option) (api.Closer, error) {
	return New(opts...).Instantiate(ctx, rt)
}

// Instantiate registers m with rt.
func (m *Module) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Closer, error) {
	builder := rt.NewHostModuleBuilder(m.name)
	for _, f := range m.funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.handler, f.params, f.results).
			Export(f.name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("instantiate host module %q: %w", m.name, err)
	}
	m.log.Debug("host module instantiated",
		zap.String("module", m.name),
		zap.String("locale", m.width.Locale),
		zap.Bool("east_asian", m.width.IsEastAsian()))
	return mod, nil
}

// --- Exported functions ----------------------------------------------------

func (m *Module) strlen(_ context.Context, mod api.Module, stack []uint64) {
	s := m.tail("u8_strlen", mod, api.DecodeU32(stack[0]))
	stack[0] = encodeCount(unistring.RuneCount(s))
}

func (m *Module) mbsnlen(_ context.Context, mod api.Module, stack []uint64) {
	ptr, n := api.DecodeU32(stack[0]), api.DecodeI32(stack[1])
	s := m.view("u8_mbsnlen", mod, ptr, int64(n))
	stack[0] = encodeCount(unistring.RuneCountN(s, len(s)))
}

func (m *Module) strwidth(_ context.Context, mod api.Module, stack []uint64) {
	ptr, end := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	s := m.view("u8_strwidth", mod, ptr, int64(end)-int64(ptr))
	stack[0] = encodeCount(unistring.WidthIn(m.width, s, len(s)))
}

func (m *Module) mblen(_ context.Context, mod api.Module, stack []uint64) {
	ptr, n := api.DecodeU32(stack[0]), api.DecodeI32(stack[1])
	s := m.view("u8_mblen", mod, ptr, int64(n))
	stack[0] = encodeCount(unistring.CharLen(s, 0))
}

func (m *Module) bytelen(_ context.Context, mod api.Module, stack []uint64) {
	s := m.tail("u8_bytelen", mod, api.DecodeU32(stack[0]))
	stack[0] = encodeCount(unistring.ByteLen(s))
}

// encodeCount encodes a non-negative result as an i32 holding an unsigned
// value. Counts beyond 2^32-1 are clamped.
func encodeCount(n int) uint64 {
	if n < 0 {
		n = 0
	} else if uint64(n) > math.MaxUint32 {
		return api.EncodeU32(math.MaxUint32)
	}
	return api.EncodeU32(uint32(n))
}

// --- Guest memory ----------------------------------------------------------

// view returns the n bytes of guest memory starting at ptr. It traps the
// guest if the range is not entirely within memory.
func (m *Module) view(fn string, mod api.Module, ptr uint32, n int64) []byte {
	mem := mod.Memory()
	if mem == nil {
		m.trap(&BoundsError{Func: fn, Ptr: ptr, Len: n})
	}
	if n < 0 || int64(ptr)+n > int64(mem.Size()) {
		m.trap(&BoundsError{Func: fn, Ptr: ptr, Len: n, MemSize: mem.Size()})
	}
	buf, ok := mem.Read(ptr, uint32(n))
	if !ok {
		m.trap(&BoundsError{Func: fn, Ptr: ptr, Len: n, MemSize: mem.Size()})
	}
	return buf
}

// tail returns guest memory from ptr up to the end of memory, which is the
// search limit for a terminating NUL.
func (m *Module) tail(fn string, mod api.Module, ptr uint32) []byte {
	var size uint32
	if mem := mod.Memory(); mem != nil {
		size = mem.Size()
	}
	return m.view(fn, mod, ptr, int64(size)-int64(ptr))
}

// trap aborts the current call. wazero recovers the panic and returns the
// error to the host caller of the guest.
func (m *Module) trap(err *BoundsError) {
	m.log.Warn("guest passed invalid memory range",
		zap.String("module", m.name),
		zap.String("func", err.Func),
		zap.Uint32("ptr", err.Ptr),
		zap.Int64("len", err.Len),
		zap.Uint32("mem_size", err.MemSize))
	panic(err)
}
