package column

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// InstructionKind discriminates Instruction's two shapes (spec.md §4.6).
type InstructionKind uint8

const (
	KindScalar InstructionKind = iota
	KindStructChild
)

// Instruction is one entry of the parallel instruction array batch-encode
// takes alongside a []DecodedProperty: either Scalar (encode this property
// as its own column) or StructChild (fold it into a shared-dictionary
// struct column named ParentName).
type Instruction struct {
	Kind InstructionKind

	// Scalar fields.
	ElemType Type
	Optional bool
	Preset   ScalarEncoder
	StrEnc   StringEncoder

	// StructChild fields.
	ParentName   string
	ChildName    string
	DictEncoding StringEncoding
}

// Scalar builds a Scalar instruction for a non-string element type.
func Scalar(elemType Type, optional bool, preset ScalarEncoder) Instruction {
	return Instruction{Kind: KindScalar, ElemType: elemType, Optional: optional, Preset: preset}
}

// ScalarStr builds a Scalar instruction for a Str/OptStr column.
func ScalarStr(optional bool, enc StringEncoder) Instruction {
	return Instruction{Kind: KindScalar, ElemType: Str, Optional: optional, StrEnc: enc}
}

// StructChild builds a StructChild instruction: property groups into the
// struct column named parentName, as the field childName.
func StructChild(parentName, childName string, dictEncoding StringEncoding) Instruction {
	return Instruction{Kind: KindStructChild, ParentName: parentName, ChildName: childName, DictEncoding: dictEncoding}
}

// EncodeBatch encodes properties per the parallel instructions array
// (spec.md §4.6): scalars appear at their input position; instructions
// sharing ParentName are grouped, in first-occurrence order, into one
// struct column appearing at the position of its first child.
func EncodeBatch(properties []DecodedProperty, instructions []Instruction) ([]byte, error) {
	if len(properties) != len(instructions) {
		return nil, fmt.Errorf("column: %w: input_len=%d config_len=%d", errs.ErrEncodingInstructionCountMismatch, len(properties), len(instructions))
	}

	groups := map[string]*structGroup{}

	for i, instr := range instructions {
		if instr.Kind != KindStructChild {
			continue
		}

		if instr.Optional {
			return nil, fmt.Errorf("column: %w: struct child %q.%q", errs.ErrTriedToEncodeOptionalStruct, instr.ParentName, instr.ChildName)
		}

		g, ok := groups[instr.ParentName]
		if !ok {
			g = &structGroup{dictEncoding: instr.DictEncoding}
			groups[instr.ParentName] = g
		}

		child, present := splitOptional(properties[i].Values)
		g.children = append(g.children, StructChildInput{Name: instr.ChildName, Values: child, Present: present})
	}

	emitted := map[string]bool{}

	var dst []byte

	for i, instr := range instructions {
		switch instr.Kind {
		case KindScalar:
			encoded, err := encodeScalarInstruction(properties[i], instr)
			if err != nil {
				return nil, err
			}

			dst = append(dst, encoded...)
		case KindStructChild:
			if emitted[instr.ParentName] {
				continue
			}

			emitted[instr.ParentName] = true

			g := groups[instr.ParentName]

			encoded, err := EncodeStruct(instr.ParentName, g.children, g.dictEncoding)
			if err != nil {
				return nil, err
			}

			dst = append(dst, encoded...)
		}
	}

	return dst, nil
}

type structGroup struct {
	dictEncoding StringEncoding
	children     []StructChildInput
}

// OutputColumnCount reports how many wire columns EncodeBatch(instructions)
// produces: one per scalar instruction, plus one per distinct ParentName
// among the StructChild instructions. Layer encoders need this to fill in
// Tile's column_count, since a batch's output column count is not simply
// len(instructions) once struct children have been grouped (spec.md §6).
func OutputColumnCount(instructions []Instruction) int {
	count := 0
	seen := map[string]bool{}

	for _, instr := range instructions {
		switch instr.Kind {
		case KindScalar:
			count++
		case KindStructChild:
			if !seen[instr.ParentName] {
				seen[instr.ParentName] = true

				count++
			}
		}
	}

	return count
}

// splitOptional turns a []any (nil = absent) into the (values, present)
// pair every column encoder expects: present is nil when every entry has a
// value.
func splitOptional(values []any) (strs []string, present []bool) {
	anyNull := false

	for _, v := range values {
		if v == nil {
			anyNull = true
			break
		}
	}

	if !anyNull {
		strs = make([]string, len(values))
		for i, v := range values {
			strs[i] = v.(string) //nolint:forcetypeassert
		}

		return strs, nil
	}

	present = make([]bool, len(values))

	for i, v := range values {
		if v == nil {
			continue
		}

		present[i] = true

		strs = append(strs, v.(string)) //nolint:forcetypeassert
	}

	return strs, present
}

func encodeScalarInstruction(prop DecodedProperty, instr Instruction) ([]byte, error) {
	switch instr.ElemType {
	case Bool, OptBool:
		values, present := splitBool(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeBool(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset}), nil
	case I8, OptI8:
		values, present := splitI8(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeI8(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset})
	case U8, OptU8:
		values, present := splitU8(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeU8(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset})
	case I32, OptI32:
		values, present := splitI32(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeI32(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset})
	case U32, OptU32:
		values, present := splitU32(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeU32(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset})
	case I64, OptI64:
		values, present := splitI64(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeI64(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset})
	case U64, OptU64:
		values, present := splitU64(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeU64(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, Preset: instr.Preset.Preset})
	case F32, OptF32:
		values, present := splitF32(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeF32(prop.Name, values, present, instr.Optional), nil
	case F64, OptF64:
		values, present := splitF64(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeF64(prop.Name, values, present, ScalarEncoder{Optional: instr.Optional, PseudoDecimal: instr.Preset.PseudoDecimal})
	case Str, OptStr:
		values, present := splitOptional(prop.Values)
		if err := checkScalarNulls(len(prop.Values), len(values), instr.Optional); err != nil {
			return nil, err
		}

		return EncodeString(prop.Name, values, present, StringEncoder{Optional: instr.Optional, Encoding: instr.StrEnc.Encoding}), nil
	default:
		return nil, fmt.Errorf("column: %w: scalar instruction element type %d", errs.ErrInvalidColumnType, instr.ElemType)
	}
}

func splitBool(values []any) (out []bool, present []bool) {
	anyNull := false

	for _, v := range values {
		if v == nil {
			anyNull = true
			break
		}
	}

	if !anyNull {
		out = make([]bool, len(values))
		for i, v := range values {
			out[i] = v.(bool) //nolint:forcetypeassert
		}

		return out, nil
	}

	present = make([]bool, len(values))

	for i, v := range values {
		if v == nil {
			continue
		}

		present[i] = true

		out = append(out, v.(bool)) //nolint:forcetypeassert
	}

	return out, present
}

func splitI8(values []any) ([]int8, []bool)     { return splitNum[int8](values) }
func splitU8(values []any) ([]uint8, []bool)    { return splitNum[uint8](values) }
func splitI32(values []any) ([]int32, []bool)   { return splitNum[int32](values) }
func splitU32(values []any) ([]uint32, []bool)  { return splitNum[uint32](values) }
func splitI64(values []any) ([]int64, []bool)   { return splitNum[int64](values) }
func splitU64(values []any) ([]uint64, []bool)  { return splitNum[uint64](values) }
func splitF32(values []any) ([]float32, []bool) { return splitNum[float32](values) }
func splitF64(values []any) ([]float64, []bool) { return splitNum[float64](values) }

func splitNum[T any](values []any) (out []T, present []bool) {
	anyNull := false

	for _, v := range values {
		if v == nil {
			anyNull = true
			break
		}
	}

	if !anyNull {
		out = make([]T, len(values))
		for i, v := range values {
			out[i] = v.(T) //nolint:forcetypeassert
		}

		return out, nil
	}

	present = make([]bool, len(values))

	for i, v := range values {
		if v == nil {
			continue
		}

		present[i] = true

		out = append(out, v.(T)) //nolint:forcetypeassert
	}

	return out, present
}

// DecodeBatch parses columnCount property columns in sequence from data
// and expands each into its decoded properties (struct columns expand to
// one DecodedProperty per child, spec.md §4.6).
func DecodeBatch(data []byte, columnCount int) ([]DecodedProperty, int, error) {
	var out []DecodedProperty

	offset := 0

	for ci := 0; ci < columnCount; ci++ {
		col, n, err := DecodeColumn(data[offset:])
		if err != nil {
			return nil, 0, err
		}

		offset += n
		out = append(out, col.Properties()...)
	}

	return out, offset, nil
}
