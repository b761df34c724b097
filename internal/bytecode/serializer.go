package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Module binary file format (grounded on the teacher's
// internal/bytecode/serializer.go header design):
//
// Header (8 bytes): magic "OVM\x00" (4 bytes), version major/minor/patch
// (1 byte each), reserved (1 byte).
// Body: one record per class descriptor, then the constructor reference
// table (class index, constructor index pairs), then the entry class name
// and the synthetic entry chunk.
// All strings and slices are length-prefixed (uint32, big-endian).

const (
	MagicNumber = "OVM\x00"

	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// Serialize encodes m into the binary module format.
func Serialize(m *Module) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(MagicNumber)
	buf.Write([]byte{VersionMajor, VersionMinor, VersionPatch, 0})

	writeUint32(&buf, uint32(len(m.Classes)))
	for _, cd := range m.Classes {
		writeClass(&buf, cd)
	}

	writeUint32(&buf, uint32(len(m.Ctors)))
	for _, r := range m.Ctors {
		writeUint32(&buf, uint32(r.ClassIndex))
		writeUint32(&buf, uint32(r.CtorIndex))
	}

	writeString(&buf, m.EntryClass)
	writeChunk(&buf, m.EntryChunk)

	return buf.Bytes(), nil
}

// Deserialize decodes a binary module previously produced by Serialize.
func Deserialize(data []byte) (*Module, error) {
	r := bytes.NewReader(data)

	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(header[:4]) != MagicNumber {
		return nil, fmt.Errorf("bad magic number %q", header[:4])
	}
	if header[4] != VersionMajor {
		return nil, fmt.Errorf("unsupported module version %d.%d.%d", header[4], header[5], header[6])
	}

	m := &Module{}
	classCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < classCount; i++ {
		cd, err := readClass(r)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		m.Classes = append(m.Classes, cd)
	}

	ctorCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < ctorCount; i++ {
		ci, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		xi, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		m.Ctors = append(m.Ctors, CtorRef{ClassIndex: int(ci), CtorIndex: int(xi)})
	}

	entryClass, err := readString(r)
	if err != nil {
		return nil, err
	}
	m.EntryClass = entryClass
	m.EntryChunk, err = readChunk(r)
	if err != nil {
		return nil, fmt.Errorf("entry chunk: %w", err)
	}

	return m, nil
}

func writeClass(buf *bytes.Buffer, cd *ClassDescriptor) {
	writeString(buf, cd.Name)
	writeString(buf, cd.Base)

	writeUint32(buf, uint32(len(cd.Fields)))
	for _, f := range cd.Fields {
		writeString(buf, f.Name)
		writeString(buf, f.StorageType)
		writeString(buf, f.RealType)
	}

	writeUint32(buf, uint32(len(cd.Ctors)))
	for _, c := range cd.Ctors {
		writeStrings(buf, c.ParamTypes)
		writeChunk(buf, c.Chunk)
	}

	writeUint32(buf, uint32(len(cd.Methods)))
	for _, m := range cd.Methods {
		writeString(buf, m.Name)
		writeStrings(buf, m.ParamTypes)
		writeString(buf, m.ReturnType)
		writeUint32(buf, uint32(m.VSlot))
		if m.Override {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		writeChunk(buf, m.Chunk)
	}
}

func readClass(r *bytes.Reader) (*ClassDescriptor, error) {
	cd := &ClassDescriptor{}
	var err error
	if cd.Name, err = readString(r); err != nil {
		return nil, err
	}
	if cd.Base, err = readString(r); err != nil {
		return nil, err
	}

	fieldCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < fieldCount; i++ {
		var f FieldDescriptor
		if f.Name, err = readString(r); err != nil {
			return nil, err
		}
		if f.StorageType, err = readString(r); err != nil {
			return nil, err
		}
		if f.RealType, err = readString(r); err != nil {
			return nil, err
		}
		cd.Fields = append(cd.Fields, f)
	}

	ctorCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < ctorCount; i++ {
		var c CtorDescriptor
		if c.ParamTypes, err = readStrings(r); err != nil {
			return nil, err
		}
		if c.Chunk, err = readChunk(r); err != nil {
			return nil, err
		}
		cd.Ctors = append(cd.Ctors, c)
	}

	methodCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < methodCount; i++ {
		var m MethodDescriptor
		if m.Name, err = readString(r); err != nil {
			return nil, err
		}
		if m.ParamTypes, err = readStrings(r); err != nil {
			return nil, err
		}
		if m.ReturnType, err = readString(r); err != nil {
			return nil, err
		}
		vslot, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		m.VSlot = int(vslot)
		overrideByte, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		m.Override = overrideByte != 0
		if m.Chunk, err = readChunk(r); err != nil {
			return nil, err
		}
		cd.Methods = append(cd.Methods, m)
	}

	return cd, nil
}

func writeChunk(buf *bytes.Buffer, c *Chunk) {
	if c == nil {
		writeString(buf, "")
		writeUint32(buf, 0)
		writeUint32(buf, 0)
		writeUint32(buf, 0)
		return
	}
	writeString(buf, c.Name)
	writeUint32(buf, uint32(c.LocalCount))

	writeUint32(buf, uint32(len(c.Constants)))
	for _, v := range c.Constants {
		buf.WriteByte(byte(v.Type))
		switch v.Type {
		case ValueInt:
			writeUint64(buf, uint64(v.Int))
		case ValueReal:
			writeUint64(buf, uint64FromFloat(v.Real))
		case ValueString:
			writeString(buf, v.Str)
		}
	}

	writeUint32(buf, uint32(len(c.Code)))
	for _, inst := range c.Code {
		writeUint32(buf, uint32(inst))
	}
}

func readChunk(r *bytes.Reader) (*Chunk, error) {
	c := &Chunk{}
	var err error
	if c.Name, err = readString(r); err != nil {
		return nil, err
	}
	localCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	c.LocalCount = int(localCount)

	constCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < constCount; i++ {
		tagByte, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		var v Value
		v.Type = ValueType(tagByte)
		switch v.Type {
		case ValueInt:
			raw, err := readUint64(r)
			if err != nil {
				return nil, err
			}
			v.Int = int64(raw)
		case ValueReal:
			raw, err := readUint64(r)
			if err != nil {
				return nil, err
			}
			v.Real = floatFromUint64(raw)
		case ValueString:
			if v.Str, err = readString(r); err != nil {
				return nil, err
			}
		}
		c.Constants = append(c.Constants, v)
	}

	codeCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < codeCount; i++ {
		raw, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		c.Code = append(c.Code, Instruction(raw))
	}

	return c, nil
}

func uint64FromFloat(f float64) uint64 { return math.Float64bits(f) }
func floatFromUint64(u uint64) float64 { return math.Float64frombits(u) }

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func writeStrings(buf *bytes.Buffer, ss []string) {
	writeUint32(buf, uint32(len(ss)))
	for _, s := range ss {
		writeString(buf, s)
	}
}

func readStrings(r *bytes.Reader) ([]string, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
