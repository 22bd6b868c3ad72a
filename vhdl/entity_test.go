package vhdl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEntity(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		ports []string
		err   error
	}{
		{
			name: "basic entity",
			text: `entity counter is
port (
    clk   : in std_logic;
    reset : in std_logic;
    count : out std_logic_vector(7 downto 0)
);
end counter;`,
			want:  "counter",
			ports: []string{"clk", "reset", "count"},
		},
		{
			name: "nested parentheses in ranges",
			text: `entity wide is
port (
    data : in std_logic_vector((WIDTH*2)-1 downto 0);
    q    : out std_logic_vector((WIDTH*2)-1 downto 0)
);
end wide;`,
			want:  "wide",
			ports: []string{"data", "q"},
		},
		{
			name: "comma separated declarations",
			text: `ENTITY Mixer IS
PORT ( a, b, c : in std_logic; y : out std_logic );
END Mixer;`,
			want:  "Mixer",
			ports: []string{"a", "b", "c", "y"},
		},
		{
			name: "comments inside the port section",
			text: `entity t is
port (
    clk : in std_logic; -- the only clock ); not a real close
    d   : in std_logic
);
end t;`,
			want:  "t",
			ports: []string{"clk", "d"},
		},
		{
			name:  "duplicate port names kept",
			text:  "entity dup is port ( x : in std_logic; x : out std_logic ); end dup;",
			want:  "dup",
			ports: []string{"x", "x"},
		},
		{
			name: "no entity",
			text: "architecture rtl of nothing is begin end rtl;",
			err:  ErrNoEntityFound,
		},
		{
			name: "entity without ports",
			text: "entity empty is\nend empty;",
			want: "empty",
			err:  ErrNoPortSectionFound,
		},
		{
			name: "unbalanced parentheses",
			text: "entity broken is port ( a : in std_logic_vector(3 downto 0 ; end broken;",
			want: "broken",
			err:  ErrUnbalancedParens,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ports, err := ExtractEntity(tt.text)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Equal(t, tt.want, name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.ports, ports)
		})
	}
}

func TestExtractEntitySkipsCommentedOutEntity(t *testing.T) {
	// a commented-out declaration before the real one is not matched
	text := `-- entity old_version is port ( a : in std_logic ); end old_version;
entity current is port ( b : in std_logic ); end current;`
	name, ports, err := ExtractEntity(text)
	require.NoError(t, err)
	assert.Equal(t, "current", name)
	assert.Equal(t, []string{"b"}, ports)
}

func TestExtractEntityOnlyFirst(t *testing.T) {
	text := `entity first is port ( a : in std_logic ); end first;
entity second is port ( b : in std_logic ); end second;`
	name, ports, err := ExtractEntity(text)
	require.NoError(t, err)
	assert.Equal(t, "first", name)
	assert.Equal(t, []string{"a"}, ports)
}

func TestInstantiation(t *testing.T) {
	text := Instantiation("adder", []string{"a", "b", "sum"}, "")
	assert.Contains(t, text, "adder: entity work.adder (rtl)")
	assert.Contains(t, text, "    a => a,")
	assert.Contains(t, text, "    sum => sum\n")
	// every port appears exactly once in the map
	assert.Equal(t, 3, strings.Count(text, "=>"))
	// the last port carries no trailing comma
	assert.NotContains(t, text, "sum => sum,")
}

func TestInstantiationRoundTrip(t *testing.T) {
	// the names on the left of each => in the emitted map must be the
	// original ports, in the original order
	ports := []string{"clk", "reset", "data_in", "data_out", "valid"}
	text := Instantiation("device", ports, "")

	var back []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "=>") {
			continue
		}
		back = append(back, strings.TrimSpace(strings.Split(line, "=>")[0]))
	}
	assert.Equal(t, ports, back)
}

func TestInstantiationCustomArchitecture(t *testing.T) {
	text := Instantiation("core", []string{"clk"}, "behavioral")
	assert.Contains(t, text, "core: entity work.core (behavioral)")
}

func TestInstantiationNoPorts(t *testing.T) {
	text := Instantiation("standalone", nil, "")
	assert.Contains(t, text, "port map (\n);")
}

func TestWriteInstantiation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "top.vhd")
	require.NoError(t, os.WriteFile(src, []byte(
		"entity top is port ( clk : in std_logic; led : out std_logic ); end top;"), 0644))

	out := filepath.Join(dir, "gen", "top_example.vhd")
	require.NoError(t, WriteInstantiation(src, out, ""))

	buf, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(buf)
	assert.Contains(t, text, "-- Generated from top.vhd")
	assert.Contains(t, text, "top: entity work.top (rtl)")
	assert.Equal(t, 2, strings.Count(text, "=>"))
}
