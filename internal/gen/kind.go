package gen

// Op names the generator step that failed.
type Op string

const (
	OpReadConfig  Op = "read config"
	OpParseConfig Op = "parse config"
	OpValidate    Op = "invalid config"
	OpRender      Op = "render"
	OpFormat      Op = "format generated source"
	OpWrite       Op = "write output"
)

// Kind is the error kind of generator failures.
type Kind struct {
	Op     Op
	Detail string
}

func (k Kind) String() string {
	if k.Detail == "" {
		return string(k.Op)
	}
	return string(k.Op) + ": " + k.Detail
}
