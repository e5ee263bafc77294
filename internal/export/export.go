// Package export serializes a GlobalSymbolTable for the stages that consume
// it: as indented text, YAML, JSON, or a protobuf Struct (binary or
// protojson).
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/symbols"
	"github.com/funvibe/classc/internal/token"
)

// Encode writes gst to w in the given format (see config.OutputFormats).
func Encode(w io.Writer, gst symbols.GlobalSymbolTable, format string) error {
	switch format {
	case config.FormatText:
		return gst.Render(w)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ToMap(gst)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ToMap(gst)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case config.FormatProto, config.FormatProtoJSON:
		s, err := ToStruct(gst)
		if err != nil {
			return err
		}
		var data []byte
		if format == config.FormatProto {
			data, err = proto.MarshalOptions{Deterministic: true}.Marshal(s)
		} else {
			data, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
		}
		if err != nil {
			return fmt.Errorf("encoding %s: %w", format, err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}

// ToMap converts gst into nested maps: namespace → name → entry, where an
// entry is {kind, type, pos: [line, column]} plus "interfaces" for classes
// and "symbols" for entries owning a table.
func ToMap(gst symbols.GlobalSymbolTable) map[string]any {
	out := make(map[string]any, len(gst))
	for ns, nst := range gst {
		table := make(map[string]any, len(nst))
		for name, e := range nst {
			table[name] = entryMap(e)
		}
		out[ns] = table
	}
	return out
}

func entryMap(e symbols.Entry) map[string]any {
	pos := e.GetPos()
	m := map[string]any{
		"kind": e.Kind().String(),
		"type": e.TypeName(),
		"pos":  []any{pos.Line, pos.Column},
	}
	if c, ok := e.(*symbols.ClassEntry); ok {
		ifaces := make([]any, 0, len(c.Interfaces))
		for _, i := range c.Interfaces {
			ifaces = append(ifaces, i)
		}
		m["interfaces"] = ifaces
	}
	if children := symbols.Children(e); children != nil {
		table := make(map[string]any, len(children))
		for name, child := range children {
			table[name] = entryMap(child)
		}
		m["symbols"] = table
	}
	return m
}

// ToStruct converts gst into a protobuf Struct with the layout of ToMap.
func ToStruct(gst symbols.GlobalSymbolTable) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(ToMap(gst))
	if err != nil {
		return nil, fmt.Errorf("building struct: %w", err)
	}
	return s, nil
}

// FromStruct rebuilds a table from the layout written by ToStruct.
func FromStruct(s *structpb.Struct) (symbols.GlobalSymbolTable, error) {
	gst := make(symbols.GlobalSymbolTable)
	for ns, v := range s.GetFields() {
		table := v.GetStructValue()
		if table == nil {
			return nil, fmt.Errorf("namespace %s: expected a table", ns)
		}
		gst[ns] = make(symbols.NamespaceSymbolTable)
		if err := attachAll(gst, []string{ns}, table); err != nil {
			return nil, err
		}
	}
	return gst, nil
}

func attachAll(gst symbols.GlobalSymbolTable, parent []string, table *structpb.Struct) error {
	for name, v := range table.GetFields() {
		path := append(append([]string(nil), parent...), name)
		fields := v.GetStructValue().GetFields()
		kind, ok := symbols.ParseSymbolKind(fields["kind"].GetStringValue())
		if !ok {
			return fmt.Errorf("%v: unknown kind %q", path, fields["kind"].GetStringValue())
		}
		pos := fields["pos"].GetListValue().GetValues()
		if len(pos) != 2 {
			return fmt.Errorf("%v: pos must be [line, column]", path)
		}
		var ifaces []string
		for _, i := range fields["interfaces"].GetListValue().GetValues() {
			ifaces = append(ifaces, i.GetStringValue())
		}
		at := token.Pos(int(pos[0].GetNumberValue()), int(pos[1].GetNumberValue()))
		e := symbols.NewEntry(kind, fields["type"].GetStringValue(), at, ifaces)
		if err := gst.Attach(path, e); err != nil {
			return err
		}
		if children := fields["symbols"].GetStructValue(); children != nil {
			if err := attachAll(gst, path, children); err != nil {
				return err
			}
		}
	}
	return nil
}
