package pypsm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/2x3systems/psmiles/psm"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyStructureType       = py.NewType("Structure", "a parsed particle structure notation string")
	pyStructureStreamType = py.NewType("StructureStream", "psm.StructureStream")
)

type pyStructure struct {
	*libpsm.Structure
}

func (X pyStructure) Type() *py.Type {
	return pyStructureType
}

func (X pyStructure) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	X.WriteAsString(&writer, psm.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (X pyStructure) M__repr__() (py.Object, error) {
	return X.M__str__()
}

// Arg 1 (str): notation
// kwargs: require_monomer (bool), particles (sequence of str)
func py_Parse(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	var input string
	if err := py.LoadTuple(args, []interface{}{&input}); err != nil {
		return nil, err
	}

	opts, err := loadParseOpts(kwargs)
	if err != nil {
		return nil, err
	}
	return pyStructure{libpsm.New(input, opts)}, nil
}

func loadParseOpts(kwargs py.StringDict) (opts psm.ParseOpts, err error) {
	if kwargs == nil {
		return
	}
	py.LoadAttr(kwargs, "require_monomer", &opts.RequireMonomer)

	if names, exists := kwargs["particles"]; exists && names != py.None {
		opts.Particles, err = loadStrings(names)
	}
	return
}

func loadStrings(obj py.Object) ([]string, error) {
	var items py.Tuple
	switch seq := obj.(type) {
	case py.Tuple:
		items = seq
	case *py.List:
		items = seq.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected a sequence of str (got %v)", obj.Type().Name)
	}

	strs := make([]string, len(items))
	for i, item := range items {
		str, ok := item.(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "item %d: expected str (got %v)", i, item.Type().Name)
		}
		strs[i] = string(str)
	}
	return strs, nil
}

// Arg 1 (str): anchor expression, e.g. "(0,0,0)->(10,10,10)"
func py_ParseAnchors(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	if err := py.LoadTuple(args, []interface{}{&expr}); err != nil {
		return nil, err
	}
	pairs, err := libpsm.ParseAnchors(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	tuple := make(py.Tuple, len(pairs))
	for i, pair := range pairs {
		tuple[i] = py.Tuple{exportPoint(pair.First), exportPoint(pair.Last)}
	}
	return tuple, nil
}

// Arg 1 (sequence of str): notations to parse, in order
func py_Stream(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "Stream() expects a sequence of str")
	}
	inputs, err := loadStrings(args[0])
	if err != nil {
		return nil, err
	}
	opts, err := loadParseOpts(kwargs)
	if err != nil {
		return nil, err
	}
	return wrapStructureStream(libpsm.StreamInputs(inputs, opts)), nil
}

func py_Structure_Input(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return py.String(X.Input()), nil
}

func py_Structure_IsValid(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return py.NewBool(X.IsValid()), nil
}

func py_Structure_ErrorKind(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return py.String(X.ErrorKind().String()), nil
}

func py_Structure_ErrorOffset(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return py.Int(X.ErrorOffset()), nil
}

func py_Structure_NumParts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return py.Int(len(X.Parts())), nil
}

func py_Structure_Tokens(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return exportStrings(X.Tokens()), nil
}

func py_Structure_Particles(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return exportStrings(X.Particles()), nil
}

func py_Structure_ParticleIndices(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	if X.HasMultipleParts() {
		return nil, py.ExceptionNewf(py.ValueError, "%v", psm.ErrMultipleParts)
	}
	return exportInts(X.ParticleIndices()), nil
}

// Arg 1 (int): depth
// Arg 2 (bool, optional): allow doublets (default True)
func py_Structure_Neighbors(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	var depth int32
	doublets := true
	if err := loadArgs(args, &depth, &doublets); err != nil {
		return nil, err
	}
	if depth < 1 {
		return nil, py.ExceptionNewf(py.ValueError, "%v", psm.ErrBadDepth)
	}

	table := X.Neighbors(int(depth), doublets)
	levels := make(py.Tuple, len(table))
	for k, walks := range table {
		levels[k] = exportStrings(walks)
	}
	return levels, nil
}

func py_Structure_Frequencies(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	counts := X.Frequencies().Sorted()
	dict := py.NewStringDictSized(len(counts))
	for _, nc := range counts {
		dict[nc.Name] = py.Int(nc.Count)
	}
	return dict, nil
}

// Arg 1 (str): anchor expression
// Arg 2 (float, optional): bond length
func py_Structure_Coordinates(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "Coordinates() expects an anchor expression")
	}
	var expr string
	if err := py.LoadTuple(args[:1], []interface{}{&expr}); err != nil {
		return nil, err
	}
	opts := psm.CoordOpts{}
	if len(args) > 1 {
		bondLen, err := py.FloatAsFloat64(args[1])
		if err != nil {
			return nil, err
		}
		opts.BondLength = bondLen
	}

	var err error
	if opts.Anchors, err = libpsm.ParseAnchors(expr); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	coords, err := X.Coordinates(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	parts := make(py.Tuple, len(coords))
	for i, pts := range coords {
		tuple := make(py.Tuple, len(pts))
		for j, pt := range pts {
			tuple[j] = exportPoint(pt)
		}
		parts[i] = tuple
	}
	return parts, nil
}

// Arg 1 (int, optional): part index (default 0)
func py_Structure_Path(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	var partIdx int32
	if err := loadArgs(args, &partIdx); err != nil {
		return nil, err
	}
	parts := X.Parts()
	if int(partIdx) < 0 || int(partIdx) >= len(parts) {
		return nil, py.ExceptionNewf(py.IndexError, "part %d of %d", partIdx, len(parts))
	}
	path := parts[partIdx].PathStartToEnd()
	if path == nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", psm.ErrNoStartEnd)
	}
	return exportInts(path), nil
}

func py_Structure_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyStructure)
	return wrapStructureStream(psm.StreamStructure(X.Structure)), nil
}

type structureStream struct {
	*psm.StructureStream
}

func (stream structureStream) Type() *py.Type {
	return pyStructureStreamType
}

func wrapStructureStream(stream *psm.StructureStream) py.Object {
	return py.Object(structureStream{stream})
}

func py_StructureStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(structureStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

func py_StructureStream_Validate(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(structureStream)
	return wrapStructureStream(stream.Validate()), nil
}

func py_StructureStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(structureStream)
	byInput := false
	if err := loadArgs(args, &byInput); err != nil {
		return nil, err
	}

	set := libpsm.NewDropDupes(libpsm.DropDupeOpts{MatchByInput: byInput})
	next := stream.AddTo(set)
	return wrapStructureStream(next), nil
}

func py_StructureStream_MultiPart(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(structureStream)
	next := stream.Select(func(X psm.Structure) bool {
		return X.HasMultipleParts()
	})
	return wrapStructureStream(next), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// kwargs: label (str), tokens (bool), errors (bool), counts (bool), file (str)
func py_StructureStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(structureStream)
	var pathname string

	opts := psm.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	count := atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", count)
	}

	py.LoadAttr(kwargs, "tokens", &opts.Tokens)
	py.LoadAttr(kwargs, "errors", &opts.Error)
	py.LoadAttr(kwargs, "counts", &opts.Counts)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapStructureStream(next), nil
}

// loadArgs loads the given positional args into dst, leaving trailing optional values as they are.
func loadArgs(args py.Tuple, dst ...interface{}) error {
	if len(args) > len(dst) {
		return py.ExceptionNewf(py.TypeError, "expected at most %d arguments (got %d)", len(dst), len(args))
	}
	return py.LoadTuple(args, dst[:len(args)])
}

func exportStrings(strs []string) py.Tuple {
	tuple := make(py.Tuple, len(strs))
	for i, s := range strs {
		tuple[i] = py.String(s)
	}
	return tuple
}

func exportInts(ints []int) py.Tuple {
	tuple := make(py.Tuple, len(ints))
	for i, v := range ints {
		tuple[i] = py.Int(v)
	}
	return tuple
}

func exportPoint(pt psm.Point3) py.Tuple {
	return py.Tuple{py.Float(pt.X), py.Float(pt.Y), py.Float(pt.Z)}
}

func init() {

	/////////////////////////////////
	// Structure
	{
		pyStructureType.Dict["Input"] = py.MustNewMethod("Input", py_Structure_Input, 0, "returns the notation string this Structure was parsed from")
		pyStructureType.Dict["IsValid"] = py.MustNewMethod("IsValid", py_Structure_IsValid, 0, "")
		pyStructureType.Dict["ErrorKind"] = py.MustNewMethod("ErrorKind", py_Structure_ErrorKind, 0, "names the first defect found, or 'Valid'")
		pyStructureType.Dict["ErrorOffset"] = py.MustNewMethod("ErrorOffset", py_Structure_ErrorOffset, 0, "")
		pyStructureType.Dict["NumParts"] = py.MustNewMethod("NumParts", py_Structure_NumParts, 0, "")
		pyStructureType.Dict["Tokens"] = py.MustNewMethod("Tokens", py_Structure_Tokens, 0, "")
		pyStructureType.Dict["Particles"] = py.MustNewMethod("Particles", py_Structure_Particles, 0, "")
		pyStructureType.Dict["ParticleIndices"] = py.MustNewMethod("ParticleIndices", py_Structure_ParticleIndices, 0, "")
		pyStructureType.Dict["Neighbors"] = py.MustNewMethod("Neighbors", py_Structure_Neighbors, 0, "returns the N-mers of each length up to the given depth")
		pyStructureType.Dict["Frequencies"] = py.MustNewMethod("Frequencies", py_Structure_Frequencies, 0, "")
		pyStructureType.Dict["Coordinates"] = py.MustNewMethod("Coordinates", py_Structure_Coordinates, 0, "")
		pyStructureType.Dict["Path"] = py.MustNewMethod("Path", py_Structure_Path, 0, "returns the START to END path of the given part")
		pyStructureType.Dict["Stream"] = py.MustNewMethod("Stream", py_Structure_Stream, 0, "")
	}

	/////////////////////////////////
	// StructureStream
	{
		pyStructureStreamType.Dict["Go"] = py.MustNewMethod("Go", py_StructureStream_Go, 0, "counts the number of structures output from the StructureStream")
		pyStructureStreamType.Dict["Print"] = py.MustNewMethod("Print", py_StructureStream_Print, 0, "prints each structure from the StructureStream")
		pyStructureStreamType.Dict["Validate"] = py.MustNewMethod("Validate", py_StructureStream_Validate, 0, "")
		pyStructureStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_StructureStream_DropDupes, 0, "")
		pyStructureStreamType.Dict["MultiPart"] = py.MustNewMethod("MultiPart", py_StructureStream_MultiPart, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Parse", py_Parse, 0, ""),
			py.MustNewMethod("ParseAnchors", py_ParseAnchors, 0, ""),
			py.MustNewMethod("Stream", py_Stream, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":  py.String(LIB_VERSION),
			"MAX_NAME_LEN": py.Int(psm.MaxParticleNameLen),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_psmiles",
				Doc:  "particle structure notation gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
