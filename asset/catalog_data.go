package asset

// DefaultCatalogTOML describes the built-in body visuals
const DefaultCatalogTOML = `
# Glyph is drawn when a body projects smaller than one cell
# Color is the base albedo used for shading
# Emissive bodies are drawn unlit

[visuals.Sun]
glyph = "@"
color = "#ffcc33"
emissive = true

[visuals.Mercury]
glyph = "o"
color = "#9e9e9e"

[visuals.Venus]
glyph = "o"
color = "#e6c87a"

[visuals.Earth]
glyph = "o"
color = "#3d7bd9"

[visuals.Moon]
glyph = "."
color = "#d0d0d0"

[visuals.Mars]
glyph = "o"
color = "#c1440e"

[visuals.Jupiter]
glyph = "O"
color = "#d8a86b"

[visuals.Saturn]
glyph = "O"
color = "#e3cf8f"

[visuals.Uranus]
glyph = "o"
color = "#9fe3e8"

[visuals.Neptune]
glyph = "o"
color = "#4166f5"

[visuals.Controls]
glyph = "#"
color = "#ffffff"
`
