package rtconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Error codes for runtime configuration failures.
const (
	ErrCodeNotFound   = "E301"
	ErrCodeCUESyntax  = "E302"
	ErrCodeValidation = "E303"
	ErrCodeDecode     = "E304"
)

// ConfigError describes a runtime configuration that could not be loaded.
type ConfigError struct {
	Code    string
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Header describes the bit fields of a block header word.
type Header struct {
	LayoutOffset      uint   `json:"layoutOffset"`
	AgeOffset         uint   `json:"ageOffset"`
	AgeWidth          uint   `json:"ageWidth"`
	AgeMask           uint64 `json:"ageMask"`
	NotYoungObjectBit uint64 `json:"notYoungObjectBit"`
	VariableBit       uint64 `json:"variableBit"`
	FwdPtrBit         uint64 `json:"fwdPtrBit"`
	TagMask           uint64 `json:"tagMask"`
	LengthMask        uint64 `json:"lengthMask"`
	HdrMask           uint64 `json:"hdrMask"`
}

// Layouts are the layout ids reserved for runtime-provided objects.
type Layouts struct {
	Map          uint16 `json:"map"`
	List         uint16 `json:"list"`
	Set          uint16 `json:"set"`
	Int          uint16 `json:"int"`
	Float        uint16 `json:"float"`
	StringBuffer uint16 `json:"stringBuffer"`
	Bool         uint16 `json:"bool"`
	Symbol       uint16 `json:"symbol"`
	Variable     uint16 `json:"variable"`
	SetIter      uint16 `json:"setIter"`
	MapIter      uint16 `json:"mapIter"`
}

// Config is the full set of runtime constants.
type Config struct {
	Header  Header  `json:"header"`
	Layouts Layouts `json:"layouts"`
}

// HeaderWord packs a tag and a layout id into a block header word.
func (c Config) HeaderWord(tag uint32, layout uint16) uint64 {
	return uint64(layout)<<c.Header.LayoutOffset | uint64(tag)&c.Header.TagMask
}

// TagOf extracts the tag from a header word.
func (c Config) TagOf(word uint64) uint32 {
	return uint32(word & c.Header.TagMask)
}

// LayoutOf extracts the layout id from a header word.
func (c Config) LayoutOf(word uint64) uint16 {
	return uint16(word >> c.Header.LayoutOffset)
}

// Default returns the constants described by the schema defaults.
func Default() Config {
	cfg, err := Parse(nil, "")
	if err != nil {
		panic(fmt.Sprintf("rtconfig: embedded schema: %v", err))
	}
	return cfg
}

// Load reads a CUE file and unifies it with the schema.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, &ConfigError{Code: ErrCodeNotFound, Path: path, Message: "runtime config not found"}
		}
		return Config{}, &ConfigError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}
	return Parse(src, path)
}

// Parse unifies src with the schema and decodes the result. A nil src
// yields the defaults.
func Parse(src []byte, name string) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, &ConfigError{Code: ErrCodeCUESyntax, Path: "schema.cue", Message: err.Error()}
	}

	value := schema
	if len(src) > 0 {
		user := ctx.CompileBytes(src, cue.Filename(name))
		if err := user.Err(); err != nil {
			return Config{}, &ConfigError{Code: ErrCodeCUESyntax, Path: name, Message: formatCUEError(err)}
		}
		value = schema.Unify(user)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, &ConfigError{Code: ErrCodeValidation, Path: name, Message: formatCUEError(err)}
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, &ConfigError{Code: ErrCodeDecode, Path: name, Message: formatCUEError(err)}
	}
	if err := cfg.check(); err != nil {
		return Config{}, &ConfigError{Code: ErrCodeValidation, Path: name, Message: err.Error()}
	}
	return cfg, nil
}

func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	return errs[0].Error()
}
