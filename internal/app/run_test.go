package app

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/specialistvlad/tiledtomap/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leftover = regexp.MustCompile(`__[A-Z][A-Z0-9_]*__`)

func requireNoOutputs(t *testing.T, base string) {
	t.Helper()
	for _, ext := range []string{".h", ".c"} {
		_, err := os.Stat(base + ext)
		require.True(t, os.IsNotExist(err), "expected %s%s not to exist", base, ext)
	}
}

func TestRun_ConvertsMapWithDefaults(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	testApp, logs := setupAppTest(t, Config{InputPath: input})

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	header, err := os.ReadFile(filepath.Join(dir, "level1.h"))
	require.NoError(t, err)
	source, err := os.ReadFile(filepath.Join(dir, "level1.c"))
	require.NoError(t, err)

	assert.Contains(t, string(header), "#ifndef LEVEL1__INCLUDE")
	assert.Contains(t, string(header), "extern const int level1_TILES[level1_WIDTH * level1_HEIGHT];")
	assert.Contains(t, string(header), "Sun Mar 17 2024 12:30:00 GMT+0000")
	assert.Contains(t, string(header), input)
	assert.Contains(t, string(source), "   0,   1,\n       2,   3,")
	assert.Contains(t, string(source), "level1.c")
	assert.Empty(t, leftover.FindAllString(string(header), -1))
	assert.Empty(t, leftover.FindAllString(string(source), -1))
	assert.Contains(t, logs.String(), "Map converted.")
	assert.Contains(t, logs.String(), "run_id="+testApp.RunID())
}

func TestRun_ExplicitOutputPathAndHexStyle(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	out := filepath.Join(dir, "world_a")
	testApp, _ := setupAppTest(t, Config{InputPath: input, OutputPath: out, Style: "hex"})

	require.NoError(t, testApp.Run(context.Background()))

	source, err := os.ReadFile(out + ".c")
	require.NoError(t, err)
	assert.Contains(t, string(source), "0x000,0x001,\n    0x002,0x003,")
	assert.Contains(t, string(source), "world_a_TILES")
	_, err = os.Stat(out + ".h")
	require.NoError(t, err)
}

func TestRun_MalformedDocumentWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "broken.tmx", `<map width="2" height="2"><layer><data>1,2,3,4</data></layer>`)
	testApp, _ := setupAppTest(t, Config{InputPath: input})

	err := testApp.Run(context.Background())

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindParse), "got %v", err)
	requireNoOutputs(t, filepath.Join(dir, "broken"))
}

func TestRun_MissingInputIsIOError(t *testing.T) {
	dir := t.TempDir()
	testApp, _ := setupAppTest(t, Config{InputPath: filepath.Join(dir, "absent.tmx")})

	err := testApp.Run(context.Background())

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindIO))
	require.ErrorIs(t, err, os.ErrNotExist)
	requireNoOutputs(t, filepath.Join(dir, "absent"))
}

func TestRun_UnwritableOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	out := filepath.Join(dir, "no", "such", "dir", "level1")
	testApp, _ := setupAppTest(t, Config{InputPath: input, OutputPath: out})

	err := testApp.Run(context.Background())

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindIO))
}

func TestRun_SizeMismatch(t *testing.T) {
	short := `<map width="2" height="2"><layer><data encoding="csv">1,2,3</data></layer></map>`

	t.Run("permissive run warns and writes", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "short.tmx", short)
		testApp, logs := setupAppTest(t, Config{InputPath: input})

		require.NoError(t, testApp.Run(context.Background()))

		assert.Contains(t, logs.String(), "Tile count does not match map size.")
		_, err := os.Stat(filepath.Join(dir, "short.c"))
		require.NoError(t, err)
	})

	t.Run("strict run fails and writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "short.tmx", short)
		testApp, _ := setupAppTest(t, Config{InputPath: input, Strict: true})

		err := testApp.Run(context.Background())

		require.Error(t, err)
		require.True(t, apperr.Is(err, apperr.KindSchema))
		requireNoOutputs(t, filepath.Join(dir, "short"))
	})
}

func TestRun_ConfigFileAndTemplateOverrides(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	headerTpl := writeFile(t, dir, "custom.h", "#pragma once // __INCLUDE_GUARD__ __VAR_MAP_NAME__\n")
	sourceTpl := writeFile(t, dir, "custom.c", "int __VAR_MAP_NAME__[] = {__MAP_DATA__};\n")
	cfgPath := writeFile(t, dir, "tiled2map.hcl", `
style       = "hex"
output_path = format("%s/gen_%s", "`+filepath.ToSlash(dir)+`", input.name)

templates {
  header = "`+filepath.ToSlash(headerTpl)+`"
  source = "`+filepath.ToSlash(sourceTpl)+`"
}

naming {
  include_guard_suffix = upper("_h")
}
`)
	testApp, _ := setupAppTest(t, Config{InputPath: input, ConfigPath: cfgPath})

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	header, err := os.ReadFile(filepath.Join(dir, "gen_level1.h"))
	require.NoError(t, err)
	source, err := os.ReadFile(filepath.Join(dir, "gen_level1.c"))
	require.NoError(t, err)
	assert.Equal(t, "#pragma once // GEN_LEVEL1_H gen_level1_TILES\n", string(header))
	assert.Equal(t, "int gen_level1_TILES[] = {0x000,0x001,\n    0x002,0x003,};\n", string(source))
}

func TestRun_UnresolvedTemplateWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	headerTpl := writeFile(t, dir, "bad.h", "__MAP_DATA__\n")
	testApp, _ := setupAppTest(t, Config{InputPath: input, HeaderTemplate: headerTpl})

	err := testApp.Run(context.Background())

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindTemplate))
	requireNoOutputs(t, filepath.Join(dir, "level1"))
}

func TestRun_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	cfgPath := writeFile(t, dir, "tiled2map.hcl", `style = "octal"`)
	testApp, _ := setupAppTest(t, Config{InputPath: input, ConfigPath: cfgPath})

	err := testApp.Run(context.Background())

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindSchema))
	requireNoOutputs(t, filepath.Join(dir, "level1"))
}

func TestRun_CanceledContextWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	testApp, _ := setupAppTest(t, Config{InputPath: input})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testApp.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	requireNoOutputs(t, filepath.Join(dir, "level1"))
}

func TestRun_EmptyLayerWarnsAndWritesValidInitializer(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "blank.tmx", `<map width="2" height="1"><layer><data encoding="csv">
</data></layer></map>`)
	testApp, logs := setupAppTest(t, Config{InputPath: input})

	require.NoError(t, testApp.Run(context.Background()))

	assert.Contains(t, logs.String(), "Layer has no tiles")
	source, err := os.ReadFile(filepath.Join(dir, "blank.c"))
	require.NoError(t, err)
	assert.Contains(t, string(source), "= {\n      -1,\n};")
}

func TestRun_LogsCarryInputPath(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	testApp, logs := setupAppTest(t, Config{InputPath: input})

	require.NoError(t, testApp.Run(context.Background()))

	assert.Contains(t, logs.String(), "input="+input)
}

func TestRun_KeepsPreviousOutputsWhenWriteFails(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	input := writeFile(t, dir, "level1.tmx", map2x2)
	writeFile(t, dir, "level1.h", "previous header")
	blocker := filepath.Join(dir, "level1.c")
	require.NoError(t, os.Mkdir(blocker, 0755))
	writeFile(t, blocker, "keep", "x")
	testApp, _ := setupAppTest(t, Config{InputPath: input})

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindIO))
	header, readErr := os.ReadFile(filepath.Join(dir, "level1.h"))
	require.NoError(t, readErr)
	assert.Equal(t, "previous header", string(header))
}
