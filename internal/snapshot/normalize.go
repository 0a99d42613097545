package snapshot

import (
	"golang.org/x/text/unicode/norm"

	"vischeck/internal/ast"
)

// normalize rewrites every identifier to NFC so field and method names
// compare equal regardless of how the front end spelled them.
func normalize(s *Snapshot) {
	s.Unit = nfc(s.Unit)
	b := s.AST
	b.Crate.Name = nfc(b.Crate.Name)

	items := b.Items.Arena.Slice()
	for i := range items {
		items[i].Name = nfc(items[i].Name)
	}
	records := b.Items.Records.Slice()
	for i := range records {
		normFieldDecls(records[i].Fields)
	}
	unions := b.Items.Unions.Slice()
	for i := range unions {
		for j := range unions[i].Variants {
			v := &unions[i].Variants[j]
			v.Name = nfc(v.Name)
			normFieldDecls(v.Fields)
		}
	}

	fields := b.Exprs.Fields.Slice()
	for i := range fields {
		fields[i].Name = nfc(fields[i].Name)
	}
	structs := b.Exprs.Structs.Slice()
	for i := range structs {
		for j := range structs[i].Fields {
			structs[i].Fields[j].Name = nfc(structs[i].Fields[j].Name)
		}
	}
	pats := b.Pats.Structs.Slice()
	for i := range pats {
		for j := range pats[i].Fields {
			pats[i].Fields[j].Name = nfc(pats[i].Fields[j].Name)
		}
	}

	t := s.Symbols.Table
	for i := range t.Units {
		t.Units[i].Name = nfc(t.Units[i].Name)
	}
	for i := range t.Defs {
		d := &t.Defs[i]
		d.Name = nfc(d.Name)
		for j := range d.Fields {
			d.Fields[j].Name = nfc(d.Fields[j].Name)
		}
	}
}

func normFieldDecls(fields []ast.FieldDecl) {
	for i := range fields {
		fields[i].Name = nfc(fields[i].Name)
	}
}

func nfc(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
