package column

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/internal/fsst"
	"github.com/maplibre/mlt-go/stream"
)

// StringEncoding selects how a Str/OptStr column's values are compressed
// on the wire (spec.md §6 "string encoding").
type StringEncoding uint8

const (
	StringPlain StringEncoding = iota
	StringFsst
)

// StringEncoder configures a Str/OptStr column encode.
type StringEncoder struct {
	Optional bool
	Encoding StringEncoding
}

// DecodedString is a decoded Str/OptStr column.
type DecodedString struct {
	Values  []string
	Present []bool
}

// EncodeString serializes a Str/OptStr column. len(values) must equal the
// number of present entries (encoder's responsibility, spec.md §4.4 nulls
// discipline).
func EncodeString(name string, values []string, present []bool, enc StringEncoder) []byte {
	typ := Str
	if enc.Optional {
		typ = OptStr
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)

	switch enc.Encoding {
	case StringFsst:
		dst = append(dst, encodeFsstBody(values, present)...)
	default:
		dst = append(dst, encodePlainBody(values, present)...)
	}

	return dst
}

// encodePlainBody builds the Str/OptStr (plain) stream sequence:
// stream-count varint, optional presence, varbinary-length stream, data
// bytes (spec.md §4.4 table).
func encodePlainBody(values []string, present []bool) []byte {
	count := uint64(2) // length stream + data stream
	if present != nil {
		count++
	}

	var dst []byte
	dst = bitpack.AppendUvarint(dst, count)
	dst = encodePresence(dst, present)

	lengths := make([]uint32, len(values))

	var corpus []byte

	for i, v := range values {
		lengths[i] = uint32(len(v)) //nolint:gosec
		corpus = append(corpus, v...)
	}

	lenStream, _ := stream.EncodeU32(stream.LengthStreamType(stream.LengthVarBinary), lengths, stream.Varint()) //nolint:errcheck
	dst = append(dst, lenStream.Bytes()...)

	dataStream := stream.Stream{
		Meta: stream.Meta{
			Type:       stream.DataType(stream.DictionaryNone),
			Encoding:   stream.Encoding{Logical1: stream.LogicalNone, Physical: stream.PhysicalNone},
			NumValues:  uint32(len(values)), //nolint:gosec
			ByteLength: uint32(len(corpus)), //nolint:gosec
		},
		Payload: corpus,
	}
	dst = append(dst, dataStream.Bytes()...)

	return dst
}

// encodeFsstBody builds the Str/OptStr (FSST) stream sequence: stream-count
// varint, optional presence, symbol-length stream, symbol-table bytes,
// value-length stream, compressed-corpus bytes.
func encodeFsstBody(values []string, present []bool) []byte {
	count := uint64(4) // symbol-length + symbol-table + value-length + corpus
	if present != nil {
		count++
	}

	var dst []byte
	dst = bitpack.AppendUvarint(dst, count)
	dst = encodePresence(dst, present)

	table := fsst.Train(values)

	symLens := make([]uint32, len(table.Symbols()))
	for i, n := range table.SymbolLengths() {
		symLens[i] = uint32(n) //nolint:gosec
	}

	symLenStream, _ := stream.EncodeU32(stream.LengthStreamType(stream.LengthSymbol), symLens, stream.Varint()) //nolint:errcheck
	dst = append(dst, symLenStream.Bytes()...)

	symBytes := table.SymbolBytes()
	symTableStream := stream.Stream{
		Meta: stream.Meta{
			Type:       stream.DataType(stream.DictionaryFsst),
			Encoding:   stream.Encoding{Logical1: stream.LogicalNone, Physical: stream.PhysicalNone},
			NumValues:  uint32(len(table.Symbols())), //nolint:gosec
			ByteLength: uint32(len(symBytes)),        //nolint:gosec
		},
		Payload: symBytes,
	}
	dst = append(dst, symTableStream.Bytes()...)

	valueLens := make([]uint32, len(values))

	var corpus []byte

	for i, v := range values {
		compressed := table.Compress(v)
		valueLens[i] = uint32(len(compressed)) //nolint:gosec
		corpus = append(corpus, compressed...)
	}

	valueLenStream, _ := stream.EncodeU32(stream.LengthStreamType(stream.LengthVarBinary), valueLens, stream.Varint()) //nolint:errcheck
	dst = append(dst, valueLenStream.Bytes()...)

	dataStream := stream.Stream{
		Meta: stream.Meta{
			Type:       stream.DataType(stream.DictionaryFsst),
			Encoding:   stream.Encoding{Logical1: stream.LogicalNone, Physical: stream.PhysicalNone},
			NumValues:  uint32(len(values)), //nolint:gosec
			ByteLength: uint32(len(corpus)), //nolint:gosec
		},
		Payload: corpus,
	}
	dst = append(dst, dataStream.Bytes()...)

	return dst
}

// DecodeStringBody parses a Str/OptStr column body (after column_type and
// name have been consumed) from the front of data.
func DecodeStringBody(data []byte, optional bool) (DecodedString, int, error) {
	streamCount, n, err := bitpack.ReadUvarint(data)
	if err != nil {
		return DecodedString{}, 0, fmt.Errorf("column: %w: string stream count", err)
	}

	offset := n

	present, m, err := decodePresence(data[offset:], optional)
	if err != nil {
		return DecodedString{}, 0, err
	}

	offset += m

	presentStreams := 0
	if present != nil {
		presentStreams++
	}

	switch int(streamCount) - presentStreams {
	case 2:
		values, consumed, err := decodePlainBody(data[offset:])
		if err != nil {
			return DecodedString{}, 0, err
		}

		if err := validatePresenceCount(present, len(values)); err != nil {
			return DecodedString{}, 0, err
		}

		return DecodedString{Values: values, Present: present}, offset + consumed, nil
	case 4:
		values, consumed, err := decodeFsstBody(data[offset:])
		if err != nil {
			return DecodedString{}, 0, err
		}

		if err := validatePresenceCount(present, len(values)); err != nil {
			return DecodedString{}, 0, err
		}

		return DecodedString{Values: values, Present: present}, offset + consumed, nil
	default:
		return DecodedString{}, 0, fmt.Errorf("column: %w: string column declared %d streams", errs.ErrStreamCountMismatch, streamCount)
	}
}

func decodePlainBody(data []byte) ([]string, int, error) {
	lenStream, n, err := stream.Parse(data, false)
	if err != nil {
		return nil, 0, err
	}

	lengths, err := stream.DecodeU32(lenStream)
	if err != nil {
		return nil, 0, err
	}

	dataStream, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return nil, 0, err
	}

	values, err := splitByLengths(dataStream.Payload, lengths)
	if err != nil {
		return nil, 0, err
	}

	return values, n + m, nil
}

func decodeFsstBody(data []byte) ([]string, int, error) {
	symLenStream, n, err := stream.Parse(data, false)
	if err != nil {
		return nil, 0, err
	}

	symLens, err := stream.DecodeU32(symLenStream)
	if err != nil {
		return nil, 0, err
	}

	symTableStream, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return nil, 0, err
	}

	n += m

	intLens := make([]int, len(symLens))
	for i, l := range symLens {
		intLens[i] = int(l)
	}

	table, err := fsst.NewTableFromSymbols(intLens, symTableStream.Payload)
	if err != nil {
		return nil, 0, err
	}

	valLenStream, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return nil, 0, err
	}

	n += m

	valLens, err := stream.DecodeU32(valLenStream)
	if err != nil {
		return nil, 0, err
	}

	corpusStream, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return nil, 0, err
	}

	n += m

	compressed, err := splitBytesByLengths(corpusStream.Payload, valLens)
	if err != nil {
		return nil, 0, err
	}

	values := make([]string, len(compressed))

	for i, c := range compressed {
		v, err := table.Decompress(c)
		if err != nil {
			return nil, 0, err
		}

		values[i] = v
	}

	return values, n, nil
}

func splitByLengths(data []byte, lengths []uint32) ([]string, error) {
	values := make([]string, len(lengths))

	offset := 0
	for i, l := range lengths {
		end := offset + int(l)
		if end > len(data) {
			return nil, fmt.Errorf("column: %w: string data shorter than declared lengths", errs.ErrTruncated)
		}

		values[i] = string(data[offset:end])
		offset = end
	}

	return values, nil
}

func splitBytesByLengths(data []byte, lengths []uint32) ([][]byte, error) {
	out := make([][]byte, len(lengths))

	offset := 0
	for i, l := range lengths {
		end := offset + int(l)
		if end > len(data) {
			return nil, fmt.Errorf("column: %w: symbol data shorter than declared lengths", errs.ErrTruncated)
		}

		out[i] = data[offset:end]
		offset = end
	}

	return out, nil
}
