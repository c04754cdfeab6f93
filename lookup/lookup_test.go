package lookup

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stvp/assert"

	"github.com/fractalqb/typeshape"
	"github.com/fractalqb/typeshape/typeref"
)

func TestTable_overrideBeforeTag(t *testing.T) {
	app := typeref.Class("dfu.App").WithTag(ShapeTag, "%(0,1)")
	tbl := NewTable()
	tmpl, ok := tbl.LookupTemplate(app)
	assert.Equal(t, true, ok)
	assert.Equal(t, "%(0,1)", tmpl)
	tbl.Set("dfu.App", "%.App.<%0,%1>")
	tmpl, ok = tbl.LookupTemplate(app)
	assert.Equal(t, true, ok)
	assert.Equal(t, "%.App.<%0,%1>", tmpl)
}

func TestTable_firstTagOnly(t *testing.T) {
	ty := typeref.Class("X").WithTag(ShapeTag, "%0").WithTag(ShapeTag, "%1")
	tmpl, _ := (*Table)(nil).LookupTemplate(ty)
	assert.Equal(t, "%0", tmpl)
}

func TestTable_absent(t *testing.T) {
	_, ok := NewTable().LookupTemplate(typeref.Class("java.util.List"))
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, len(NewTable().Shape(typeref.Class("java.util.List"))))
}

func TestTable_emptyOverrideRemovesShape(t *testing.T) {
	tbl := NewTable()
	tbl.Set("X", "")
	ty := typeref.Class("X").WithTag(ShapeTag, "%0")
	assert.Equal(t, 0, len(typeshape.ShapeOf(tbl, ty)))
}

func TestTable_shapeCache(t *testing.T) {
	tbl := NewTable()
	tbl.Set("F", "%0 -> %1")
	ty := typeref.Class("F")
	first := tbl.Shape(ty)
	assert.Equal(t, 3, len(first))
	assert.Equal(t, 1, len(tbl.tokens))
	tbl.Set("F", "%0")
	assert.Equal(t, 0, len(tbl.tokens))
	if diff := cmp.Diff([]typeshape.Token{typeshape.TypeArgument{Index: 0}}, tbl.Shape(ty)); diff != "" {
		t.Errorf("shape after update (-want +got):\n%s", diff)
	}
}

func TestTable_concurrent(t *testing.T) {
	tbl := NewTable()
	tbl.Set("F", "%0 -> %1")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tbl.Shape(typeref.Class("F"))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, len(tbl.Shape(typeref.Class("F"))))
}

func TestLoad_yaml(t *testing.T) {
	tbl, err := Load(strings.NewReader(`
shapes:
  dfu.App: "%(0,1)"
  dfu.Either: "%0 | %1"
`), "test.yaml")
	assert.Nil(t, err)
	assert.Equal(t, []string{"dfu.App", "dfu.Either"}, tbl.Names())
	tmpl, _ := tbl.LookupTemplate(typeref.Class("dfu.Either"))
	assert.Equal(t, "%0 | %1", tmpl)
}

func TestLoad_json(t *testing.T) {
	tbl, err := Load(strings.NewReader(`{"shapes": {"dfu.Func": "(%0) -> %1"}}`), "test.json")
	assert.Nil(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoad_errors(t *testing.T) {
	_, err := Load(strings.NewReader("  \n"), "blank.yaml")
	assert.Equal(t, "lookup: file blank.yaml is empty", err.Error())
	_, err = Load(strings.NewReader("shapes: [1, 2"), "broken.yaml")
	assert.NotNil(t, err)
	_, err = Load(strings.NewReader(`{"shapes": {"": "%0"}}`), "noname.json")
	assert.NotNil(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	if err := os.WriteFile(path, []byte("shapes:\n  a.B: \"%0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a.B"}, tbl.Names())
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestTable_replace(t *testing.T) {
	tbl := NewTable()
	tbl.Set("F", "%0")
	tbl.Shape(typeref.Class("F"))
	src := NewTable()
	src.Set("G", "%1")
	tbl.Replace(src)
	assert.Equal(t, []string{"G"}, tbl.Names())
	assert.Equal(t, 0, len(tbl.tokens))
	src.Set("H", "%2")
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_overridesOnlyClasses(t *testing.T) {
	tbl := NewTable()
	tbl.Set("F", "%0")
	tbl.Set("int", "%1")
	_, ok := tbl.LookupTemplate(typeref.Var("F", ""))
	assert.Equal(t, false, ok)
	_, ok = tbl.LookupTemplate(typeref.Primitive("int"))
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, len(tbl.Shape(typeref.Var("F", ""))))
	assert.Equal(t, 0, len(tbl.tokens))
	tmpl, ok := tbl.LookupTemplate(typeref.Class("F"))
	assert.Equal(t, true, ok)
	assert.Equal(t, "%0", tmpl)
	tagged := typeref.Var("G", "").WithTag(ShapeTag, "%^1")
	tmpl, _ = tbl.LookupTemplate(tagged)
	assert.Equal(t, "%^1", tmpl)
}

func TestTable_replaceWhileShaping(t *testing.T) {
	tbl := NewTable()
	ty := typeref.Class("F")
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				tbl.Shape(ty)
			}
		}()
	}
	for j := 0; j < 200; j++ {
		src := NewTable()
		if j%2 == 0 {
			src.Set("F", "%0")
		} else {
			src.Set("F", "%0 -> %1")
		}
		tbl.Replace(src)
	}
	wg.Wait()
	tmpl, _ := tbl.LookupTemplate(ty)
	assert.Equal(t, "%0 -> %1", tmpl)
	assert.Equal(t, tmpl, typeshape.Format(tbl.Shape(ty)))
}
