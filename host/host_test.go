package host

import (
	"context"
	"errors"
	"testing"

	"github.com/npillmayer/unistring/uax11"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// --- Hand-assembled guest modules ------------------------------------------

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func wasmName(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

// wasmSection assembles a section. Contents are small, the size fits into
// a single LEB128 byte.
func wasmSection(id byte, parts ...[]byte) []byte {
	var content []byte
	for _, p := range parts {
		content = append(content, p...)
	}
	return append([]byte{id, byte(len(content))}, content...)
}

func concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// memoryGuest exports one page of memory and nothing else.
func memoryGuest() []byte {
	return concat(wasmHeader,
		wasmSection(5, []byte{0x01, 0x00, 0x01}),
		wasmSection(7, []byte{0x01}, wasmName("memory"), []byte{0x02, 0x00}),
	)
}

// callingGuest imports u8_strlen and u8_strwidth from the host module and
// exports wrappers "strlen" and "strwidth" calling them, plus its memory.
func callingGuest(module string) []byte {
	return concat(wasmHeader,
		wasmSection(1, []byte{0x02,
			0x60, 0x01, 0x7f, 0x01, 0x7f, // (i32) -> i32
			0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f}), // (i32, i32) -> i32
		wasmSection(2, []byte{0x02},
			wasmName(module), wasmName("u8_strlen"), []byte{0x00, 0x00},
			wasmName(module), wasmName("u8_strwidth"), []byte{0x00, 0x01}),
		wasmSection(3, []byte{0x02, 0x00, 0x01}),
		wasmSection(5, []byte{0x01, 0x00, 0x01}),
		wasmSection(7, []byte{0x03},
			wasmName("memory"), []byte{0x02, 0x00},
			wasmName("strlen"), []byte{0x00, 0x02},
			wasmName("strwidth"), []byte{0x00, 0x03}),
		wasmSection(10, []byte{0x02},
			[]byte{0x06, 0x00, 0x20, 0x00, 0x10, 0x00, 0x0b},
			[]byte{0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x01, 0x0b}),
	)
}

func newGuest(t *testing.T, ctx context.Context, rt wazero.Runtime) api.Module {
	t.Helper()
	guest, err := rt.InstantiateWithConfig(ctx, memoryGuest(), wazero.NewModuleConfig().WithName("guest"))
	if err != nil {
		t.Fatalf("cannot instantiate guest: %v", err)
	}
	return guest
}

func put(t *testing.T, guest api.Module, ptr uint32, s string) {
	t.Helper()
	if !guest.Memory().Write(ptr, []byte(s)) {
		t.Fatalf("cannot write %q to guest memory at %d", s, ptr)
	}
}

func call(ctx context.Context, f api.GoModuleFunc, guest api.Module, params ...uint64) int32 {
	stack := make([]uint64, 2)
	copy(stack, params)
	f(ctx, guest, stack)
	return api.DecodeI32(stack[0])
}

func expectTrap(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Errorf("%s: expected trap, got %v", name, r)
			return
		}
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("%s: expected ErrOutOfBounds, got %v", name, err)
		}
		var berr *BoundsError
		if !errors.As(err, &berr) || berr.Func != name {
			t.Errorf("%s: expected bounds error for %s, got %v", name, name, err)
		}
	}()
	f()
}

// --- Tests -----------------------------------------------------------------

func TestFunctions(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	guest := newGuest(t, ctx, rt)
	put(t, guest, 100, "pókè\x00rest")
	put(t, guest, 200, "A (世). \U0001F600")
	m := New()
	//
	if n := call(ctx, m.strlen, guest, api.EncodeU32(100)); n != 4 {
		t.Errorf("u8_strlen: expected 4, have %d", n)
	}
	if n := call(ctx, m.bytelen, guest, api.EncodeU32(100)); n != 6 {
		t.Errorf("u8_bytelen: expected 6, have %d", n)
	}
	if n := call(ctx, m.mbsnlen, guest, api.EncodeU32(100), api.EncodeI32(11)); n != 9 {
		t.Errorf("u8_mbsnlen: expected 9, have %d", n)
	}
	for i, l := range []int32{1, 2, 1, 2} {
		off := []uint32{100, 101, 103, 104}[i]
		if n := call(ctx, m.mblen, guest, api.EncodeU32(off), api.EncodeI32(4)); n != l {
			t.Errorf("u8_mblen at %d: expected %d, have %d", off, l, n)
		}
	}
	if n := call(ctx, m.mblen, guest, api.EncodeU32(101), api.EncodeI32(0)); n != 0 {
		t.Errorf("u8_mblen with n=0: expected 0, have %d", n)
	}
	if n := call(ctx, m.mblen, guest, api.EncodeU32(101), api.EncodeI32(1)); n != 1 {
		t.Errorf("u8_mblen with truncated sequence: expected 1, have %d", n)
	}
	if w := call(ctx, m.strwidth, guest, api.EncodeU32(100), api.EncodeU32(106)); w != 4 {
		t.Errorf("u8_strwidth: expected 4, have %d", w)
	}
	if w := call(ctx, m.strwidth, guest, api.EncodeU32(200), api.EncodeU32(213)); w != 10 {
		t.Errorf("u8_strwidth: expected 10, have %d", w)
	}
	if w := call(ctx, m.strwidth, guest, api.EncodeU32(100), api.EncodeU32(100)); w != 0 {
		t.Errorf("u8_strwidth for empty range: expected 0, have %d", w)
	}
	// memory is zeroed beyond the strings
	if n := call(ctx, m.strlen, guest, api.EncodeU32(1000)); n != 0 {
		t.Errorf("u8_strlen for empty string: expected 0, have %d", n)
	}
}

func TestEastAsianContext(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	guest := newGuest(t, ctx, rt)
	put(t, guest, 0, "pókè")
	m := New(WithContext(uax11.ContextForEncoding("EUC-JP")))
	if w := call(ctx, m.strwidth, guest, api.EncodeU32(0), api.EncodeU32(6)); w != 6 {
		t.Errorf("u8_strwidth in East Asian context: expected 6, have %d", w)
	}
}

func TestUnterminated(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	guest := newGuest(t, ctx, rt)
	size := guest.Memory().Size()
	put(t, guest, size-3, "abc")
	m := New()
	if n := call(ctx, m.strlen, guest, api.EncodeU32(size-3)); n != 3 {
		t.Errorf("u8_strlen: expected string to end at end of memory, have %d", n)
	}
	if n := call(ctx, m.bytelen, guest, api.EncodeU32(size)); n != 0 {
		t.Errorf("u8_bytelen at end of memory: expected 0, have %d", n)
	}
}

func TestBounds(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	guest := newGuest(t, ctx, rt)
	size := guest.Memory().Size()
	core, logs := observer.New(zapcore.WarnLevel)
	m := New(WithLogger(zap.New(core)))
	//
	expectTrap(t, "u8_strlen", func() {
		call(ctx, m.strlen, guest, api.EncodeU32(size+1))
	})
	expectTrap(t, "u8_bytelen", func() {
		call(ctx, m.bytelen, guest, api.EncodeU32(size+100))
	})
	expectTrap(t, "u8_mbsnlen", func() {
		call(ctx, m.mbsnlen, guest, api.EncodeU32(0), api.EncodeI32(-1))
	})
	expectTrap(t, "u8_mbsnlen", func() {
		call(ctx, m.mbsnlen, guest, api.EncodeU32(size-2), api.EncodeI32(3))
	})
	expectTrap(t, "u8_mblen", func() {
		call(ctx, m.mblen, guest, api.EncodeU32(size), api.EncodeI32(1))
	})
	expectTrap(t, "u8_strwidth", func() {
		call(ctx, m.strwidth, guest, api.EncodeU32(10), api.EncodeU32(5))
	})
	expectTrap(t, "u8_strwidth", func() {
		call(ctx, m.strwidth, guest, api.EncodeU32(0), api.EncodeU32(size+1))
	})
	if n := logs.Len(); n != 7 {
		t.Errorf("expected 7 warnings to be logged, have %d", n)
	}
}

func TestInstantiate(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	//
	closer, err := Instantiate(ctx, rt)
	if err != nil {
		t.Fatal(err)
	}
	mod := rt.Module(DefaultModuleName)
	if mod == nil {
		t.Fatalf("host module %q not registered", DefaultModuleName)
	}
	defs := mod.ExportedFunctionDefinitions()
	for _, f := range New().funcs() {
		if _, ok := defs[f.name]; !ok {
			t.Errorf("expected host module to export %s", f.name)
		}
	}
	if err := closer.Close(ctx); err != nil {
		t.Errorf("cannot close host module: %v", err)
	}
	if _, err = Instantiate(ctx, rt, WithModuleName("strings")); err != nil {
		t.Fatal(err)
	}
	if rt.Module("strings") == nil {
		t.Errorf("host module not registered under custom name")
	}
}

func TestGuestCalls(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	//
	if _, err := Instantiate(ctx, rt); err != nil {
		t.Fatal(err)
	}
	guest, err := rt.InstantiateWithConfig(ctx, callingGuest(DefaultModuleName),
		wazero.NewModuleConfig().WithName("caller"))
	if err != nil {
		t.Fatalf("cannot instantiate calling guest: %v", err)
	}
	put(t, guest, 16, "世界\x00")
	res, err := guest.ExportedFunction("strlen").Call(ctx, api.EncodeU32(16))
	if err != nil {
		t.Fatal(err)
	}
	if n := api.DecodeI32(res[0]); n != 2 {
		t.Errorf("strlen: expected 2, have %d", n)
	}
	res, err = guest.ExportedFunction("strwidth").Call(ctx, api.EncodeU32(16), api.EncodeU32(22))
	if err != nil {
		t.Fatal(err)
	}
	if w := api.DecodeI32(res[0]); w != 4 {
		t.Errorf("strwidth: expected 4, have %d", w)
	}
	_, err = guest.ExportedFunction("strwidth").Call(ctx, api.EncodeU32(22), api.EncodeU32(16))
	if err == nil {
		t.Fatalf("expected guest to be trapped for end < ptr")
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected error to match ErrOutOfBounds, is %v", err)
	}
}

func TestResultsAreUnsigned(t *testing.T) {
	for _, c := range []struct {
		n    int
		want uint32
	}{
		{0, 0},
		{4, 4},
		{1<<31 - 1, 1<<31 - 1},
		{1 << 31, 1 << 31}, // would be negative as a signed i32
		{1<<32 - 1, 1<<32 - 1},
		{1 << 33, 1<<32 - 1},
		{-1, 0},
	} {
		if v := api.DecodeU32(encodeCount(c.n)); v != c.want {
			t.Errorf("count %d: expected result %d, have %d", c.n, c.want, v)
		}
	}
}
