// Package classreader extracts class-to-class references from compiled
// Java class files.
//
// The reader works on the constant pool only: every CONSTANT_Class entry
// and every field or method descriptor contributes referenced class names.
// That covers superclasses, interfaces, field and method signatures, and
// all call sites without interpreting bytecode instructions.
//
// [Scanner] walks classpath roots (directories, .class files, archives)
// and feeds each class and each of its references to a [Handler], the
// callback contract of the dependency-graph ingest phase.
package classreader

import (
	"encoding/binary"
	"errors"
	"slices"
	"strings"

	derrors "github.com/obqo/decycle/pkg/errors"
)

const classMagic = 0xCAFEBABE

// Constant pool tags, JVM spec table 4.4-A.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// errNotClassFile marks data that is not a class file at all (wrong magic
// or too short). Such entries are skipped silently during scanning.
var errNotClassFile = errors.New("not a class file")

// ClassInfo is the result of parsing one class file: the class's own name
// and the sorted, deduplicated names of every class it references, all in
// dot-separated form with '$' for nested classes.
type ClassInfo struct {
	Name       string
	References []string
}

// Parse reads a class file and extracts its references. Data with a wrong
// magic number yields errNotClassFile via [IsNotClassFile]; structurally
// broken class files yield a CLASS_FORMAT error.
func Parse(data []byte) (*ClassInfo, error) {
	r := &reader{data: data}
	if len(data) < 4 || r.u4() != classMagic {
		return nil, errNotClassFile
	}
	r.u2() // minor version
	r.u2() // major version

	cpCount := int(r.u2())
	utf8s := make(map[int]string)
	classSlots := make(map[int]int) // pool slot of a Class constant -> Utf8 index
	var descriptorIndexes []int

	for i := 1; i < cpCount; i++ {
		switch tag := r.u1(); tag {
		case tagUtf8:
			n := int(r.u2())
			utf8s[i] = string(r.bytes(n))
		case tagInteger, tagFloat:
			r.skip(4)
		case tagLong, tagDouble:
			r.skip(8)
			i++ // wide entries take two slots
		case tagClass:
			classSlots[i] = int(r.u2())
		case tagString, tagMethodType, tagModule, tagPackage:
			idx := int(r.u2())
			if tag == tagMethodType {
				descriptorIndexes = append(descriptorIndexes, idx)
			}
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			r.u2()
			second := int(r.u2())
			if tag == tagNameAndType {
				descriptorIndexes = append(descriptorIndexes, second)
			}
		case tagMethodHandle:
			r.skip(3)
		default:
			return nil, derrors.New(derrors.ErrCodeClassFormat, "unknown constant pool tag %d", tag)
		}
		if r.err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeClassFormat, r.err, "truncated constant pool")
		}
	}

	r.u2() // access flags
	thisClass := int(r.u2())
	r.u2() // super class (also present as a Class constant)
	for range int(r.u2()) {
		r.u2() // interface indexes, also Class constants
	}

	// Field and method descriptors reference parameter and return types that
	// may not occur anywhere else in the pool.
	for range 2 {
		count := int(r.u2())
		for range count {
			r.u2() // access flags
			r.u2() // name index
			descriptorIndexes = append(descriptorIndexes, int(r.u2()))
			r.skipAttributes()
		}
	}
	if r.err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeClassFormat, r.err, "truncated class body")
	}

	ownUtf8, ok := classSlots[thisClass]
	if !ok {
		return nil, derrors.New(derrors.ErrCodeClassFormat, "this_class index %d is not a class constant", thisClass)
	}
	ownInternal := utf8s[ownUtf8]

	refs := make(map[string]struct{})
	add := func(internal string) {
		name := internalToName(internal)
		if name != "" {
			refs[name] = struct{}{}
		}
	}

	for _, ci := range classSlots {
		internal, ok := utf8s[ci]
		if !ok {
			continue
		}
		if strings.HasPrefix(internal, "[") {
			referencesFromDescriptor(internal, add)
		} else {
			add(internal)
		}
	}
	for _, di := range descriptorIndexes {
		if desc, ok := utf8s[di]; ok {
			referencesFromDescriptor(desc, add)
		}
	}

	own := internalToName(ownInternal)
	delete(refs, own)

	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	slices.Sort(names)

	return &ClassInfo{Name: own, References: names}, nil
}

// IsNotClassFile reports whether err marks input that is not a class file
// (as opposed to a malformed one).
func IsNotClassFile(err error) bool {
	return errors.Is(err, errNotClassFile)
}

// referencesFromDescriptor extracts every "L<classname>;" occurrence from a
// field, method, or array descriptor.
func referencesFromDescriptor(desc string, add func(string)) {
	for i := 0; i < len(desc); {
		if desc[i] != 'L' {
			i++
			continue
		}
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			return
		}
		add(desc[i+1 : i+end])
		i += end + 1
	}
}

// internalToName converts an internal name (com/example/Foo$Bar) to the
// dot-separated form used throughout the graph. Primitive and malformed
// names yield the empty string.
func internalToName(internal string) string {
	if internal == "" || strings.HasPrefix(internal, "[") {
		return ""
	}
	return strings.ReplaceAll(internal, "/", ".")
}

// reader is a cursor over class file bytes. After an overflow all
// operations return zero values and err is set; callers check err at
// convenient points instead of after every read.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) u1() byte {
	if r.err != nil || r.off+1 > len(r.data) {
		r.fail()
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

func (r *reader) u2() uint16 {
	if r.err != nil || r.off+2 > len(r.data) {
		r.fail()
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) u4() uint32 {
	if r.err != nil || r.off+4 > len(r.data) {
		r.fail()
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil || n < 0 || r.off+n > len(r.data) {
		r.fail()
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) skip(n int) { r.bytes(n) }

// skipAttributes consumes an attributes table (count, then name/length
// prefixed entries).
func (r *reader) skipAttributes() {
	count := int(r.u2())
	for range count {
		r.u2() // attribute name index
		length := int(r.u4())
		r.skip(length)
		if r.err != nil {
			return
		}
	}
}

func (r *reader) fail() {
	if r.err == nil {
		r.err = errors.New("unexpected end of class file")
	}
}
