package errors

import "strconv"

// ERR is the numeric error code carried by every *Error.
type ERR int32

//nolint:revive,stylecheck // upper snake case mirrors the wire names of the codes
const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT          ERR = 6
	ERR_CONTEXT_CANCELED ERR = 7
	ERR_BLOCK_INVALID    ERR = 11
)

// ERR_name maps every known code to its name.
//
//nolint:revive,stylecheck
var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	6:  "CONTEXT",
	7:  "CONTEXT_CANCELED",
	11: "BLOCK_INVALID",
}

// ERR_value is the reverse of ERR_name.
//
//nolint:revive,stylecheck
var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

// Enum returns the name of the code, or its number for codes without a name.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}

func (x ERR) String() string {
	return x.Enum()
}
