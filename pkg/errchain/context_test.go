package errchain

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codeKind is a kind that is itself an error, so failures of this type
// convert straight into terminal nodes.
type codeKind string

func (k codeKind) Error() string { return string(k) }

// notFound maps itself to a kind through Kinder.
type notFound struct{ key string }

func (e *notFound) Error() string        { return "no such key " + e.key }
func (e *notFound) ErrorKind() testKind  { return baseError("missing " + e.key) }
func (e *notFound) Is(target error) bool { return target == errNotFound }

var errNotFound = errors.New("not found")

func TestContext_SuccessPassesThrough(t *testing.T) {
	assert.NoError(t, Context[testKind](nil, kindParse))
	assert.NoError(t, ContextWith[testKind](nil, func() testKind { return kindParse }))
	assert.Nil(t, ContextAt[testKind](nil, kindParse, Here()))

	v, err := Attach(42, nil, kindParse)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = AttachWith(7, nil, func() testKind { return kindParse })
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestContext_SuccessDoesNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		if Context[testKind](nil, kindParse) != nil {
			t.Fatal("unexpected error")
		}
		if _, err := Attach(1, nil, kindParse); err != nil {
			t.Fatal("unexpected error")
		}
	})
	assert.Zero(t, allocs)
}

func TestContext_WrapsFailure(t *testing.T) {
	root := From(baseError("test"))
	err, want := Context(root, kindContext), line()

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	assert.Equal(t, kindContext, chain.Kind())
	assert.Same(t, root, chain.Cause())
	assert.Equal(t, baseError("test"), chain.Cause().Kind())
	assert.Nil(t, chain.Cause().Cause())
	assert.Equal(t, want, chain.Site().Line)
	assert.NotEqual(t, chain.Site(), root.Site())
}

func TestContextWith_WrapsFailure(t *testing.T) {
	err := ContextWith(From(baseError("test")), func() testKind { return kindContext })

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	assert.Equal(t, kindContext, chain.Kind())
	assert.Equal(t, baseError("test"), chain.Cause().Kind())
	assert.Nil(t, chain.Cause().Cause())
}

func TestContextWith_ProducerOnlyOnFailure(t *testing.T) {
	calls := 0
	produce := func() testKind {
		calls++
		return testKind{Name: "Parse", Detail: fmt.Sprintf("parse line %d", calls)}
	}

	for i := 0; i < 5; i++ {
		_ = ContextWith[testKind](nil, produce)
		_, _ = AttachWith("ok", nil, produce)
	}
	assert.Equal(t, 0, calls)

	_ = ContextWith(From(baseError("bad input")), produce)
	_, _ = AttachWith("", error(From(baseError("bad input"))), produce)
	assert.Equal(t, 2, calls)
}

func TestContext_DepthGrowsByOne(t *testing.T) {
	const n = 10
	var err error = From(baseError("root"))
	for i := 0; i < n; i++ {
		err = Context(err, testKind{Name: "Layer", Detail: fmt.Sprintf("layer %d", i)})
	}

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	assert.Equal(t, n+1, chain.Depth())

	node := chain
	for i := 0; i < n+1; i++ {
		require.NotNil(t, node, "node %d", i)
		node = node.Cause()
	}
	assert.Nil(t, node)
}

func TestContext_TwoLayers(t *testing.T) {
	root := From(baseError("test"))
	err := Context(Context(root, kindLoad), kindStartup)

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	assert.Equal(t, kindStartup, chain.Kind())
	assert.Equal(t, kindLoad, chain.Cause().Kind())
	assert.Equal(t, baseError("test"), chain.Cause().Cause().Kind())
	assert.Nil(t, chain.Cause().Cause().Cause())

	sites := Sites(err)
	require.Len(t, sites, 3)
	assert.Equal(t, root.Site(), sites[2])
}

func TestContext_ForeignError(t *testing.T) {
	err, want := Context(io.EOF, kindParse), line()

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	assert.Equal(t, 2, chain.Depth())
	assert.True(t, errors.Is(err, io.EOF))

	root := chain.Cause()
	assert.True(t, root.Opaque())
	assert.Same(t, io.EOF, root.Source())
	assert.Equal(t, want, root.Site().Line)
	assert.Equal(t, fmt.Sprintf("[%s] Parse: [%s] EOF", chain.Site(), root.Site()), err.Error())
	assert.False(t, HasKind(err, testKind{}))
}

func TestContext_FailureIsKind(t *testing.T) {
	var failure error = codeKind("disk full")
	err := Context(failure, codeKind("write journal"))

	var chain *Error[codeKind]
	require.True(t, errors.As(err, &chain))
	assert.Equal(t, codeKind("write journal"), chain.Kind())
	assert.Equal(t, codeKind("disk full"), chain.Cause().Kind())
	assert.False(t, chain.Cause().Opaque())
	assert.Nil(t, chain.Cause().Source())
}

func TestContext_KinderError(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", &notFound{key: "user/7"})
	err := Context(wrapped, kindLoad)

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	root := chain.Cause()
	assert.Equal(t, baseError("missing user/7"), root.Kind())
	assert.False(t, root.Opaque())
	assert.Same(t, wrapped, root.Source())
	assert.True(t, errors.Is(err, errNotFound))
	assert.True(t, HasKind(err, baseError("missing user/7")))
}

func TestContextAt_ExplicitSite(t *testing.T) {
	site := CallSite{File: "/gen/store/errors_gen.go", Line: 99}
	err := ContextAt(From(baseError("test")), kindLoad, site)

	assert.Equal(t, site, err.Site())
	assert.NotEqual(t, site, err.Cause().Site())
	assert.Nil(t, err.Cause().Cause())
}

func TestAttach_Failure(t *testing.T) {
	v, err := Attach(3, error(From(baseError("partial"))), kindLoad)
	assert.Equal(t, 3, v)

	got, ok := KindOf[testKind](err)
	require.True(t, ok)
	assert.Equal(t, kindLoad, got)
}

func TestKindOf(t *testing.T) {
	_, ok := KindOf[testKind](errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf[testKind](Context(io.EOF, kindParse).(*Error[testKind]).Cause())
	assert.False(t, ok, "opaque nodes have no kind")

	kind, ok := KindOf[testKind](fmt.Errorf("outer: %w", Context(io.EOF, kindParse)))
	require.True(t, ok)
	assert.Equal(t, kindParse, kind)

	_, ok = KindOf[codeKind](Context(io.EOF, kindParse))
	assert.False(t, ok, "different kind type")
}

func TestHasKind(t *testing.T) {
	inner := Context(From(baseError("disk full")), kindLoad)
	outer := Context(fmt.Errorf("while starting: %w", inner), kindStartup)

	assert.True(t, HasKind(outer, kindStartup))
	assert.True(t, HasKind(outer, kindLoad), "chain behind a foreign wrapper")
	assert.True(t, HasKind(outer, baseError("disk full")))
	assert.False(t, HasKind(outer, kindParse))
	assert.False(t, HasKind(nil, kindParse))
	assert.False(t, HasKind(errors.New("plain"), kindParse))
}

func TestIsChain(t *testing.T) {
	assert.False(t, IsChain(nil))
	assert.False(t, IsChain(errors.New("plain")))
	assert.True(t, IsChain(From(baseError("x"))))
	assert.True(t, IsChain(fmt.Errorf("wrapped: %w", From(codeKind("x")))))
}

func TestContext_KindsOutermostFirst(t *testing.T) {
	err := Context(Context(Context(From(baseError("root")), kindParse), kindLoad), kindStartup)

	var chain *Error[testKind]
	require.True(t, errors.As(err, &chain))
	var got []testKind
	for node := range chain.Chain() {
		got = append(got, node.Kind())
	}
	want := []testKind{kindStartup, kindLoad, kindParse, baseError("root")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Chain() kinds mismatch (-want +got):\n%s", diff)
	}
}
