package api

import (
	"reflect"
	"testing"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

func TestParseFormRoundTrip(t *testing.T) {
	spec := types.ExampleSpec()
	got, err := ParseForm(FormValues(spec))
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if !reflect.DeepEqual(got, spec) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, spec)
	}
}

func TestParseFormReportsEveryField(t *testing.T) {
	values := FormValues(types.ExampleSpec())
	values.Set(FieldPlotLength, "abc")
	values.Set(FieldFloors, "0")
	values.Set(FieldMortarMix, "1:9")
	values.Del(FieldSlabThickness)
	values.Set(FieldPaintCoats, "2.5")

	_, err := ParseForm(values)
	if !errors.IsInvalidInput(err) {
		t.Fatalf("expected input error, got %v", err)
	}

	got := map[string]int{}
	for _, f := range errors.Fields(err) {
		got[f.Field]++
	}
	want := []string{"plot.length", "floors", "walls.mortar", "slab.thickness", "finishing.paint_coats"}
	for _, field := range want {
		if got[field] != 1 {
			t.Errorf("field %s reported %d times, want 1", field, got[field])
		}
	}
	if len(got) != len(want) {
		t.Errorf("fields = %v", got)
	}
}

func TestParseFormFinishFlags(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(v map[string][]string)
		plaster bool
		tiles   bool
		paint   bool
	}{
		{
			name:    "all checked",
			edit:    func(v map[string][]string) {},
			plaster: true, tiles: true, paint: true,
		},
		{
			name: "unchecked boxes are off",
			edit: func(v map[string][]string) {
				delete(v, FieldFinishTiles)
				delete(v, FieldFinishPaint)
			},
			plaster: true,
		},
		{
			name: "no marker means every finish",
			edit: func(v map[string][]string) {
				delete(v, FieldFinishFlags)
				delete(v, FieldFinishPlaster)
				delete(v, FieldFinishTiles)
				delete(v, FieldFinishPaint)
			},
			plaster: true, tiles: true, paint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := FormValues(types.ExampleSpec())
			tt.edit(values)
			spec, err := ParseForm(values)
			if err != nil {
				t.Fatalf("ParseForm: %v", err)
			}
			fin := spec.Finishing
			if fin.Plaster != tt.plaster || fin.Tiles != tt.tiles || fin.Paint != tt.paint {
				t.Errorf("finishing = %+v", fin)
			}
		})
	}
}

func TestParseFormDisabledFinishIgnoresItsFields(t *testing.T) {
	values := FormValues(types.ExampleSpec())
	values.Del(FieldFinishTiles)
	values.Set(FieldTileSize, "7")
	values.Set(FieldFlooringArea, "")

	spec, err := ParseForm(values)
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if spec.Finishing.TileSize != 0 || spec.Finishing.FlooringArea != 0 {
		t.Errorf("tile fields should be zero when tiles are off: %+v", spec.Finishing)
	}
}

func TestParseFormOptionalFields(t *testing.T) {
	values := FormValues(types.ExampleSpec())
	values.Set(FieldStructure, "load_bearing")
	values.Set(FieldColumns, "")
	values.Set(FieldColumnLength, "")
	values.Set(FieldColumnWidth, "")
	values.Set(FieldColumnHeight, "")
	values.Set(FieldWallHeight, "")
	values.Set(FieldInternalWall, "")

	spec, err := ParseForm(values)
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if spec.Columns.Count != 0 || spec.Walls.Height != 0 || spec.Walls.InternalLength != 0 {
		t.Errorf("optional fields = %+v %+v", spec.Columns, spec.Walls)
	}
	if spec.Structure != types.StructureLoadBearing {
		t.Errorf("structure = %q", spec.Structure)
	}
}
