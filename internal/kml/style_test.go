package kml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromID(t *testing.T) {
	assert.Equal(t, KindArea, KindFromID("area1"))
	assert.Equal(t, KindPoint, KindFromID("pointStyle"))
	assert.Equal(t, KindLine, KindFromID("line_road"))
	assert.Equal(t, KindUnknown, KindFromID("Area1"))
	assert.Equal(t, KindUnknown, KindFromID("myarea"))
	assert.Equal(t, KindUnknown, KindFromID(""))
}

func TestParseWidth(t *testing.T) {
	assert.Equal(t, 3, parseWidth("3"))
	assert.Equal(t, 1, parseWidth("1.5"))
	assert.Equal(t, 4, parseWidth(" 4 "))
	assert.Equal(t, 2, parseWidth("abc"))
	assert.Equal(t, 2, parseWidth(""))
	assert.Equal(t, 2, parseWidth("0"))
	assert.Equal(t, 2, parseWidth("-3"))
}

const styleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Style id="area1">
    <LineStyle><color>ff0000ff</color><width>3</width></LineStyle>
    <PolyStyle><color>7f00ff00</color><fill>1</fill><outline>1</outline></PolyStyle>
  </Style>
  <Style id="line2">
    <LineStyle><color>ffff0000</color><width>abc</width></LineStyle>
  </Style>
  <Style id="point3">
    <LabelStyle><color>ff00ffff</color></LabelStyle>
    <IconStyle><color>ffffffff</color></IconStyle>
  </Style>
  <Style id="area4">
    <PolyStyle><fill>0</fill><outline>yes</outline><color></color></PolyStyle>
  </Style>
  <Style>
    <LineStyle><color>ff000000</color></LineStyle>
  </Style>
  <Folder>
    <Style id="nested"><LineStyle><width>5</width></LineStyle></Style>
  </Folder>
</Document>
</kml>`

func TestParseStyles(t *testing.T) {
	styles, err := ParseStyles([]byte(styleDoc))
	require.NoError(t, err)
	require.Len(t, styles, 5, "style without id is skipped")

	area := styles["area1"]
	assert.Equal(t, StyleRecord{
		ID:             "area1",
		LineColor:      "#ff0000",
		LineWidth:      3,
		PolyColor:      "#00ff00",
		FillEnabled:    true,
		OutlineEnabled: true,
		Kind:           KindArea,
	}, area)

	line := styles["line2"]
	assert.Equal(t, "#0000ff", line.LineColor)
	assert.Equal(t, DefaultLineWidth, line.LineWidth)
	assert.True(t, line.FillEnabled, "fill defaults to true when absent")
	assert.False(t, line.OutlineEnabled)
	assert.Equal(t, KindLine, line.Kind)

	point := styles["point3"]
	assert.Equal(t, "#ffff00", point.LabelColor)
	assert.Equal(t, "#ffffff", point.IconColor)
	assert.Empty(t, point.LineColor)
	assert.Equal(t, DefaultLineWidth, point.LineWidth)
	assert.Equal(t, KindPoint, point.Kind)

	area4 := styles["area4"]
	assert.False(t, area4.FillEnabled, "explicit 0 disables fill")
	assert.False(t, area4.OutlineEnabled)
	assert.Empty(t, area4.PolyColor, "empty color stays unset")

	nested := styles["nested"]
	assert.Equal(t, 5, nested.LineWidth)
	assert.Equal(t, KindUnknown, nested.Kind)
}

func TestParseStylesDuplicateLastWins(t *testing.T) {
	doc := `<kml><Document>
  <Style id="dup"><LineStyle><width>4</width></LineStyle></Style>
  <Style id="other"/>
  <Style id="dup"><LineStyle><width>7</width></LineStyle></Style>
</Document></kml>`
	styles, err := ParseStyles([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, styles, 2)
	assert.Equal(t, 7, styles["dup"].LineWidth)
}

func TestStylesLookup(t *testing.T) {
	styles := Styles{"area1": {ID: "area1"}}

	rec, ok := styles.Lookup("#area1")
	assert.True(t, ok)
	assert.Equal(t, "area1", rec.ID)

	_, ok = styles.Lookup("area1")
	assert.True(t, ok)

	_, ok = styles.Lookup("#missing")
	assert.False(t, ok)

	_, ok = styles.Lookup("#")
	assert.False(t, ok)
}
