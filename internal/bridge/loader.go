package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/bridgegen/internal/ctxlog"
	"github.com/vk/bridgegen/internal/fsutil"
	"github.com/vk/bridgegen/internal/include"
	"github.com/vk/bridgegen/internal/namepath"
)

// Extension is the file extension of declaration files.
const Extension = ".hcl"

var enumReprs = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
}

// --- HCL decoding structs ---

type hclFile struct {
	Bridges []*hclBridge `hcl:"bridge,block"`
}

type hclBridge struct {
	Name        string         `hcl:"name,label"`
	Namespace   *hcl.Attribute `hcl:"namespace,optional"`
	Include     *hcl.Attribute `hcl:"include,optional"`
	Require     *hcl.Attribute `hcl:"require,optional"`
	Structs     []*hclStruct   `hcl:"struct,block"`
	Enums       []*hclEnum     `hcl:"enum,block"`
	ExternTypes []*hclItem     `hcl:"extern_type,block"`
	OpaqueTypes []*hclItem     `hcl:"opaque_type,block"`
	Functions   []*hclFunction `hcl:"function,block"`
	DefRange    hcl.Range      `hcl:",def_range"`
}

type hclItem struct {
	Name      string         `hcl:"name,label"`
	Namespace *hcl.Attribute `hcl:"namespace,optional"`
	Cfg       *hcl.Attribute `hcl:"cfg,optional"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

type hclStruct struct {
	Name      string         `hcl:"name,label"`
	Namespace *hcl.Attribute `hcl:"namespace,optional"`
	Cfg       *hcl.Attribute `hcl:"cfg,optional"`
	Fields    []*hclTyped    `hcl:"field,block"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

type hclEnum struct {
	Name      string         `hcl:"name,label"`
	Namespace *hcl.Attribute `hcl:"namespace,optional"`
	Cfg       *hcl.Attribute `hcl:"cfg,optional"`
	Repr      *string        `hcl:"repr,optional"`
	Variants  []string       `hcl:"variants"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

type hclFunction struct {
	Name      string         `hcl:"name,label"`
	Namespace *hcl.Attribute `hcl:"namespace,optional"`
	Cfg       *hcl.Attribute `hcl:"cfg,optional"`
	Params    []*hclTyped    `hcl:"param,block"`
	Returns   *hcl.Attribute `hcl:"returns,optional"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

// hclTyped is a `field` or `param` block.
type hclTyped struct {
	Name     string         `hcl:"name,label"`
	Type     *hcl.Attribute `hcl:"type"`
	DefRange hcl.Range      `hcl:",def_range"`
}

// Loader reads bridge declarations from HCL files. A Loader keeps every
// parsed file so diagnostics can be rendered with source snippets.
type Loader struct {
	parser  *hclparse.Parser
	evalCtx *hcl.EvalContext
}

// NewLoader creates a loader. defines are visible to `cfg` conditions as
// `var.<name>`.
func NewLoader(defines map[string]string) *Loader {
	return &Loader{
		parser:  hclparse.NewParser(),
		evalCtx: newEvalContext(defines),
	}
}

// Files returns every file parsed so far, keyed by filename.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load parses every declaration file under paths. Each path may be a file
// or a directory searched recursively. Declaration problems are returned
// together as hcl.Diagnostics wrapped in the error.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Bridge, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Bridge loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, fmt.Errorf("failed to find declaration files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered declaration files.", "count", len(files))

	var (
		bridges []*Bridge
		diags   hcl.Diagnostics
	)
	for _, file := range files {
		hclFile, parseDiags := l.parser.ParseHCLFile(file)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}
		found, fileDiags := l.decodeFile(file, hclFile)
		diags = append(diags, fileDiags...)
		bridges = append(bridges, found...)
	}
	return l.finish(ctx, bridges, diags)
}

// LoadSource parses declarations from memory.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) ([]*Bridge, error) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return l.finish(ctx, nil, diags)
	}
	bridges, fileDiags := l.decodeFile(filename, hclFile)
	return l.finish(ctx, bridges, append(diags, fileDiags...))
}

func (l *Loader) finish(ctx context.Context, bridges []*Bridge, diags hcl.Diagnostics) ([]*Bridge, error) {
	logger := ctxlog.FromContext(ctx)

	seen := make(map[string]*Bridge)
	for _, b := range bridges {
		if prev, dup := seen[b.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate bridge",
				Detail:   fmt.Sprintf("A bridge named %q was already declared at %s.", b.Name, prev.DefRange),
				Subject:  b.DefRange.Ptr(),
			})
			continue
		}
		seen[b.Name] = b
	}

	if diags.HasErrors() {
		logger.Debug("Bridge declarations rejected.", "diagnostics", len(diags))
		return nil, fmt.Errorf("invalid bridge declarations: %w", diags)
	}
	logger.Debug("Bridge loading complete.", "bridges", len(bridges))
	return bridges, nil
}

func (l *Loader) decodeFile(filename string, file *hcl.File) ([]*Bridge, hcl.Diagnostics) {
	var root hclFile
	diags := gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	d := &decoder{filename: filename, src: file.Bytes, evalCtx: l.evalCtx}
	bridges := make([]*Bridge, 0, len(root.Bridges))
	for _, hb := range root.Bridges {
		b, bridgeDiags := d.bridge(hb)
		diags = append(diags, bridgeDiags...)
		if b != nil {
			bridges = append(bridges, b)
		}
	}
	return bridges, diags
}

// decoder translates the decoded HCL structs of one file into the model.
type decoder struct {
	filename string
	src      []byte
	evalCtx  *hcl.EvalContext
}

func (d *decoder) bridge(hb *hclBridge) (*Bridge, hcl.Diagnostics) {
	b := &Bridge{
		Name:          hb.Name,
		FSInformation: NewFSInfo(d.filename),
		DefRange:      hb.DefRange,
	}
	ns, diags := d.namespace(hb.Namespace, nil)
	b.Namespace = ns

	for _, raw := range d.stringList(hb.Include, &diags) {
		inc, err := include.ParseInclude(raw)
		if err != nil {
			diags = append(diags, attrError(hb.Include, "Invalid include", err))
			continue
		}
		b.Includes = append(b.Includes, inc)
	}
	for _, raw := range d.stringList(hb.Require, &diags) {
		c, err := include.ParseCapability(raw)
		if err != nil {
			diags = append(diags, attrError(hb.Require, "Invalid capability", err))
			continue
		}
		b.Requires = append(b.Requires, c)
	}

	for _, hi := range hb.ExternTypes {
		if item, ok := d.item(hi.Name, hi.Namespace, hi.Cfg, hi.DefRange, b, &diags); ok {
			b.ExternTypes = append(b.ExternTypes, item)
		}
	}
	for _, hi := range hb.OpaqueTypes {
		if item, ok := d.item(hi.Name, hi.Namespace, hi.Cfg, hi.DefRange, b, &diags); ok {
			b.OpaqueTypes = append(b.OpaqueTypes, item)
		}
	}
	for _, he := range hb.Enums {
		if e, ok := d.enum(he, b, &diags); ok {
			b.Enums = append(b.Enums, e)
		}
	}
	for _, hs := range hb.Structs {
		item, ok := d.item(hs.Name, hs.Namespace, hs.Cfg, hs.DefRange, b, &diags)
		if !ok {
			continue
		}
		s := &Struct{Item: *item}
		for _, hf := range hs.Fields {
			typ, typeDiags := d.typeAttr(hf.Type)
			diags = append(diags, typeDiags...)
			s.Fields = append(s.Fields, &Field{Name: hf.Name, Type: typ})
		}
		b.Structs = append(b.Structs, s)
	}
	for _, hf := range hb.Functions {
		item, ok := d.item(hf.Name, hf.Namespace, hf.Cfg, hf.DefRange, b, &diags)
		if !ok {
			continue
		}
		f := &Function{Item: *item}
		for _, hp := range hf.Params {
			typ, typeDiags := d.typeAttr(hp.Type)
			diags = append(diags, typeDiags...)
			f.Params = append(f.Params, &Param{Name: hp.Name, Type: typ})
		}
		if hf.Returns != nil {
			var retDiags hcl.Diagnostics
			f.Returns, retDiags = d.typeAttr(hf.Returns)
			diags = append(diags, retDiags...)
		}
		b.Functions = append(b.Functions, f)
	}

	diags = append(diags, checkDuplicates(b)...)
	return b, diags
}

// item decodes the parts shared by every declaration. It reports false for
// items switched off by their cfg condition or whose cfg failed.
func (d *decoder) item(name string, nsAttr, cfgAttr *hcl.Attribute, defRange hcl.Range, b *Bridge, diags *hcl.Diagnostics) (*Item, bool) {
	enabled, cfgDiags := evalCfg(cfgAttr, d.evalCtx)
	*diags = append(*diags, cfgDiags...)
	if !enabled {
		return nil, false
	}

	ns, nsDiags := d.namespace(nsAttr, b.Namespace)
	*diags = append(*diags, nsDiags...)
	return &Item{Name: name, Namespace: ns, DefRange: defRange}, true
}

func (d *decoder) enum(he *hclEnum, b *Bridge, diags *hcl.Diagnostics) (*Enum, bool) {
	item, ok := d.item(he.Name, he.Namespace, he.Cfg, he.DefRange, b, diags)
	if !ok {
		return nil, false
	}
	e := &Enum{Item: *item, Repr: "u8", Variants: he.Variants}
	if he.Repr != nil {
		e.Repr = *he.Repr
	}
	if !enumReprs[e.Repr] {
		*diags = append(*diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid enum repr",
			Detail:   fmt.Sprintf("Enum %q has repr %q; use one of u8, u16, u32, u64, i8, i16, i32, i64.", e.Name, e.Repr),
			Subject:  item.DefRange.Ptr(),
		})
	}
	if len(e.Variants) == 0 {
		*diags = append(*diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty enum",
			Detail:   fmt.Sprintf("Enum %q must declare at least one variant.", e.Name),
			Subject:  item.DefRange.Ptr(),
		})
	}
	seen := make(map[string]bool, len(e.Variants))
	for _, v := range e.Variants {
		if seen[v] {
			*diags = append(*diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate enum variant",
				Detail:   fmt.Sprintf("Enum %q declares variant %q more than once.", e.Name, v),
				Subject:  item.DefRange.Ptr(),
			})
		}
		seen[v] = true
	}
	return e, true
}

// namespace resolves an optional namespace attribute from its raw source
// text, so both `"a::b"` and a bare identifier are accepted.
func (d *decoder) namespace(attr *hcl.Attribute, fallback *namepath.NamePath) (*namepath.NamePath, hcl.Diagnostics) {
	if attr == nil {
		return fallback, nil
	}
	rng := attr.Expr.Range()
	path, err := namepath.ParseBytes(rng.SliceBytes(d.src), d.filename, rng.Start)
	if err != nil {
		return fallback, pathDiags(err)
	}
	return path, nil
}

// typeAttr parses a string-literal type attribute at its source position.
func (d *decoder) typeAttr(attr *hcl.Attribute) (Type, hcl.Diagnostics) {
	rng := attr.Expr.Range()
	raw := rng.SliceBytes(d.src)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' || bytes.Contains(raw, []byte("${")) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type",
			Detail:   "A type must be written as a plain string literal, e.g. \"Vec<u8>\".",
			Subject:  rng.Ptr(),
		}}
	}
	start := rng.Start
	start.Byte++
	start.Column++
	return ParseType(raw[1:len(raw)-1], d.filename, start)
}

func (d *decoder) stringList(attr *hcl.Attribute, diags *hcl.Diagnostics) []string {
	if attr == nil {
		return nil
	}
	var list []string
	*diags = append(*diags, gohcl.DecodeExpression(attr.Expr, nil, &list)...)
	return list
}

func checkDuplicates(b *Bridge) hcl.Diagnostics {
	var diags hcl.Diagnostics
	seen := make(map[string]*Item)
	for _, it := range b.Items() {
		key := it.Path().String()
		if prev, dup := seen[key]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate item",
				Detail:   fmt.Sprintf("%s is already declared at %s.", key, prev.DefRange),
				Subject:  it.DefRange.Ptr(),
			})
			continue
		}
		seen[key] = it
	}
	return diags
}

func pathDiags(err error) hcl.Diagnostics {
	var malformed *namepath.MalformedPathError
	if errors.As(err, &malformed) {
		return hcl.Diagnostics{malformed.Diagnostic()}
	}
	return hcl.Diagnostics{{Severity: hcl.DiagError, Summary: "Invalid path", Detail: err.Error()}}
}

func attrError(attr *hcl.Attribute, summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error() + ".",
		Subject:  attr.Expr.Range().Ptr(),
	}
}
