package console

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const initialBoard = `8 R N B Q K B N R 
7 P P P P P P P P 
6 - - - - - - - - 
5 - - - - - - - - 
4 - - - - - - - - 
3 - - - - - - - - 
2 P P P P P P P P 
1 R N B Q K B N R 
  a b c d e f g h
`

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).PrintBoard(model.NewMatch().Board(), nil)
	if diff := cmp.Diff(initialBoard, buf.String()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintMatch(t *testing.T) {
	m := model.NewMatch()
	for _, mv := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}} {
		if _, err := m.PerformMove(model.MustParseSquare(mv[0]), model.MustParseSquare(mv[1])); err != nil {
			t.Fatalf("move %v: %v", mv, err)
		}
	}

	var buf bytes.Buffer
	NewRenderer(&buf).PrintMatch(m.State())
	out := buf.String()
	for _, want := range []string{
		"5 - - - P - - - - \n",
		"White: []\n",
		"Black: [P]\n",
		"Turn: 4\n",
		"Last move: P e4-d5\n",
		"Waiting player: black\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CHECK") {
		t.Errorf("unexpected check banner:\n%s", out)
	}
}

func TestParseSquareInput(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"e2", "e2", false},
		{"E2", "e2", false},
		{" h8 ", "h8", false},
		{"i1", "", true},
		{"a0", "", true},
		{"a10", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquareInput(tt.in)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidCoordinate) {
					t.Errorf("ParseSquareInput(%q) error = %v, want ErrInvalidCoordinate", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSquareInput(%q): %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseSquareInput(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPromotionChoice(t *testing.T) {
	for in, want := range map[string]bool{
		"B": true, "n": true, " r ": true, "Q": true,
		"K": false, "P": false, "queen": false, "": false,
	} {
		if got := IsPromotionChoice(in); got != want {
			t.Errorf("IsPromotionChoice(%q) = %v, want %v", in, got, want)
		}
	}
}

func play(t *testing.T, input string) (*model.Match, string) {
	t.Helper()
	m := model.NewMatch()
	var out bytes.Buffer
	if err := NewGame(m, strings.NewReader(input), &out).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return m, out.String()
}

func TestGameFoolsMate(t *testing.T) {
	m, out := play(t, "f2\nf3\nz9\ne7\ne5\ng2\ng4\nd8\nh4\n")
	if !m.Checkmate() {
		t.Fatalf("match not over:\n%s", out)
	}
	for _, want := range []string{"CHECKMATE!", "Winner: black", "error reading square"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGameRejectedMoveIsReported(t *testing.T) {
	m, out := play(t, "e2\ne5\n")
	if !strings.Contains(out, model.ErrTargetUnreachable.Error()) {
		t.Errorf("output missing rejection:\n%s", out)
	}
	if m.Turn() != 1 {
		t.Errorf("turn = %d, want 1", m.Turn())
	}
}

func TestGamePromotionReprompts(t *testing.T) {
	moves := []string{
		"h2", "h4", "g7", "g5",
		"h4", "g5", "h7", "h6",
		"g5", "h6", "a7", "a6",
		"h6", "h7", "a6", "a5",
		"h7", "g8",
		"K", "x", "n",
	}
	m, out := play(t, strings.Join(moves, "\n")+"\n")
	if n := strings.Count(out, "Invalid value!"); n != 2 {
		t.Errorf("re-prompted %d times, want 2", n)
	}
	p := m.PieceAt(model.MustParseSquare("g8"))
	if p == nil || p.Type() != model.Knight || p.Color() != model.White {
		t.Errorf("g8 = %v, want white knight", p)
	}
	if m.Promoted() != nil {
		t.Error("promotion still pending")
	}
}
