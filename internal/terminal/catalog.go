package terminal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

var (
	ErrEmptyCatalog   = errors.New("terminal: catalog needs at least one script and one reward screen")
	ErrNoRewardImages = errors.New("terminal: reward image pool is empty")
	ErrDuplicateID    = errors.New("terminal: duplicate screen id")
	ErrBadTiming      = errors.New("terminal: screen total duration must exceed typing duration")
	ErrWrongKind      = errors.New("terminal: screen listed under the wrong catalog")
)

// Catalog holds the two screen lists and the reward image pool.
// Indexes [0, len(Scripts)) address scripts, the following ones rewards.
type Catalog struct {
	Scripts    []Screen
	Rewards    []Screen
	RewardURLs []string
}

// Clone returns a deep copy that shares no slices with c
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Scripts:    slices.Clone(c.Scripts),
		Rewards:    slices.Clone(c.Rewards),
		RewardURLs: slices.Clone(c.RewardURLs),
	}
	for i := range out.Scripts {
		out.Scripts[i].Lines = slices.Clone(out.Scripts[i].Lines)
	}
	return out
}

// Len returns the size of the concatenated index space
func (c Catalog) Len() int {
	return len(c.Scripts) + len(c.Rewards)
}

// At returns the screen at a concatenated index
func (c Catalog) At(i int) *Screen {
	if i < len(c.Scripts) {
		return &c.Scripts[i]
	}
	return &c.Rewards[i-len(c.Scripts)]
}

// KindAt reports whether index i addresses a script or a reward
func (c Catalog) KindAt(i int) Kind {
	if i < len(c.Scripts) {
		return KindScript
	}
	return KindReward
}

// Lookup finds a screen index by id
func (c Catalog) Lookup(id string) (int, bool) {
	for i := 0; i < c.Len(); i++ {
		if c.At(i).ID == id {
			return i, true
		}
	}
	return 0, false
}

// IDs lists every screen id in index order
func (c Catalog) IDs() []string {
	ids := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		ids = append(ids, c.At(i).ID)
	}
	return ids
}

// Suggest returns the screen id closest to a mistyped one, if any is close
// enough to be a plausible typo.
func (c Catalog) Suggest(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, cand := range c.IDs() {
		d := levenshtein.ComputeDistance(id, cand)
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist < 0 || float64(bestDist)/float64(max(len(id), len(best))) >= 0.5 {
		return "", false
	}
	return best, true
}

// Validate checks the authoring invariants the Sequencer relies on
func (c Catalog) Validate() error {
	if len(c.Scripts) == 0 || len(c.Rewards) == 0 {
		return ErrEmptyCatalog
	}
	if len(c.RewardURLs) == 0 {
		return ErrNoRewardImages
	}

	seen := make(map[string]bool, c.Len())
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		if seen[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true

		if s.Kind != c.KindAt(i) {
			return fmt.Errorf("%w: %q is a %s", ErrWrongKind, s.ID, s.Kind)
		}
		if s.Total <= s.Typing {
			return fmt.Errorf("%w: %q typing=%v total=%v", ErrBadTiming, s.ID, s.Typing, s.Total)
		}
	}
	return nil
}

const prompt = "zach@portfolio:~$"

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DefaultCatalog returns the sessions shown on the portfolio home page
func DefaultCatalog() Catalog {
	return Catalog{
		Scripts:    defaultScripts(),
		Rewards:    defaultRewards(),
		RewardURLs: DefaultRewardURLs(),
	}
}

// DefaultRewardURLs is the fixed pool reward screens pick their image from
func DefaultRewardURLs() []string {
	return []string{
		"/static/rewards/muay-thai.svg",
		"/static/rewards/pool-table.svg",
		"/images/TargetLogo.jpg",
		"https://images.unsplash.com/photo-1518770660439-4636190af475?w=1200",
		"https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=1200",
		"https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=1200",
	}
}

func defaultScripts() []Screen {
	return []Screen{
		{
			ID:      "ssh-login",
			Kind:    KindScript,
			Typing:  ms(800),
			Total:   ms(6000),
			Prompt:  "guest@laptop:~$",
			Command: "ssh zach@portfolio.dev",
			Lines: []Line{
				{Text: "Connecting to portfolio.dev (203.0.113.7) port 22...", Style: StyleMuted, Reveal: ms(400)},
				{Text: "Authenticated with public key \"ed25519\".", Style: StyleSuccess, Reveal: ms(1100)},
				{Text: "Welcome to Ubuntu 24.04 LTS (GNU/Linux 6.8.0 x86_64)", Reveal: ms(1700)},
				{Text: "Last login: Fri Oct 17 21:04:11 2026 from 198.51.100.23", Style: StyleMuted, Reveal: ms(2300)},
				{Text: prompt, Style: StyleAccent, Reveal: ms(3000)},
			},
		},
		{
			ID:      "module-init",
			Kind:    KindScript,
			Typing:  ms(1200),
			Total:   ms(6500),
			Prompt:  prompt,
			Command: "go mod init github.com/Zachkp/zach-dev",
			Lines: []Line{
				{Text: "go: creating new go.mod: module github.com/Zachkp/zach-dev", Reveal: ms(300)},
				{Text: "go: to add module requirements and sums:", Style: StyleMuted, Reveal: ms(900)},
				{Text: "\tgo mod tidy", Style: StyleAccent, Reveal: ms(1300)},
				{Text: "$ mkdir -p templates static images", Style: StyleMuted, Reveal: ms(2200)},
				{Text: "$ touch main.go admin.go text.go", Style: StyleMuted, Reveal: ms(2900)},
				{Text: "✔ project skeleton ready", Style: StyleSuccess, Reveal: ms(3800)},
			},
		},
		{
			ID:      "package-add",
			Kind:    KindScript,
			Typing:  ms(1000),
			Total:   ms(6000),
			Prompt:  prompt,
			Command: "go get github.com/gin-gonic/gin@v1.10.1",
			Lines: []Line{
				{Text: "go: downloading github.com/gin-gonic/gin v1.10.1", Style: StyleMuted, Reveal: ms(300)},
				{Text: "go: downloading github.com/gin-contrib/sse v0.1.0", Style: StyleMuted, Reveal: ms(700)},
				{Text: "go: downloading github.com/go-playground/validator/v10 v10.20.0", Style: StyleMuted, Reveal: ms(1100)},
				{Text: "go: added github.com/gin-gonic/gin v1.10.1", Style: StyleSuccess, Reveal: ms(1900)},
				{Text: "go: added modernc.org/sqlite v1.38.2", Style: StyleSuccess, Reveal: ms(2400)},
			},
		},
		{
			ID:      "object-inspector",
			Kind:    KindScript,
			Typing:  ms(900),
			Total:   ms(7000),
			Prompt:  prompt,
			Command: "jq . whoami.json",
			Lines: []Line{
				{Text: "{", Reveal: ms(200)},
				{Text: "  \"name\": \"Zach Kordas-Potter\",", Style: StyleAccent, Reveal: ms(500)},
				{Text: "  \"role\": \"Software Developer\",", Style: StyleAccent, Reveal: ms(800)},
				{Text: "  \"languages\": [\"Go\", \"Python\", \"JavaScript\"],", Style: StyleAccent, Reveal: ms(1100)},
				{Text: "  \"hobbies\": [\"Muay Thai\", \"Pool\"],", Style: StyleAccent, Reveal: ms(1400)},
				{Text: "  \"open_to_work\": true", Style: StyleSuccess, Reveal: ms(1700)},
				{Text: "}", Reveal: ms(2000)},
			},
		},
		{
			ID:      "editor-session",
			Kind:    KindScript,
			Typing:  ms(700),
			Total:   ms(7500),
			Prompt:  prompt,
			Command: "vim main.go",
			Lines: []Line{
				{Text: "  1 package main", Style: StyleAccent, Reveal: ms(200)},
				{Text: "  2 ", Reveal: ms(250)},
				{Text: "  3 import \"github.com/gin-gonic/gin\"", Reveal: ms(600)},
				{Text: "  4 ", Reveal: ms(650)},
				{Text: "  5 func main() {", Reveal: ms(1200)},
				{Text: "  6 \tr := gin.Default()", Reveal: ms(1900)},
				{Text: "  7 \tr.GET(\"/\", home)", Reveal: ms(2600)},
				{Text: "  8 \tr.Run(\":8080\")", Reveal: ms(3300)},
				{Text: "  9 }", Reveal: ms(3700)},
				{Text: "\"main.go\" 9L, 142B written", Style: StyleMuted, Reveal: ms(4800)},
			},
		},
		{
			ID:      "dev-server",
			Kind:    KindScript,
			Typing:  ms(600),
			Total:   ms(6500),
			Prompt:  prompt,
			Command: "go run .",
			Lines: []Line{
				{Text: "[GIN-debug] Loaded HTML Templates (9):", Style: StyleMuted, Reveal: ms(700)},
				{Text: "[GIN-debug] GET    /                         --> main.main.func1 (3 handlers)", Reveal: ms(1100)},
				{Text: "[GIN-debug] GET    /terminal/stream          --> main.streamTerminal (3 handlers)", Reveal: ms(1400)},
				{Text: "[GIN-debug] Listening and serving HTTP on :8080", Style: StyleSuccess, Reveal: ms(2000)},
				{Text: "[GIN] 200 |   1.204ms | 127.0.0.1 | GET \"/\"", Style: StyleAccent, Reveal: ms(3200)},
			},
		},
		{
			ID:      "build",
			Kind:    KindScript,
			Typing:  ms(1100),
			Total:   ms(6000),
			Prompt:  prompt,
			Command: "go build -trimpath -o bin/site .",
			Lines: []Line{
				{Text: "$ ls -lh bin/", Style: StyleMuted, Reveal: ms(1200)},
				{Text: "-rwxr-xr-x 1 zach zach 24M Oct 18 09:12 site", Reveal: ms(1600)},
				{Text: "$ ./bin/site --version", Style: StyleMuted, Reveal: ms(2400)},
				{Text: "portfolio v2.3.0 (go1.24.4 linux/amd64)", Style: StyleSuccess, Reveal: ms(2900)},
			},
		},
		{
			ID:      "test-run",
			Kind:    KindScript,
			Typing:  ms(800),
			Total:   ms(6500),
			Prompt:  prompt,
			Command: "go test ./...",
			Lines: []Line{
				{Text: "ok  \tgithub.com/Zachkp/zach-dev\t0.412s", Style: StyleSuccess, Reveal: ms(900)},
				{Text: "ok  \tgithub.com/Zachkp/zach-dev/internal/clock\t0.006s", Style: StyleSuccess, Reveal: ms(1300)},
				{Text: "ok  \tgithub.com/Zachkp/zach-dev/internal/store\t0.087s", Style: StyleSuccess, Reveal: ms(1800)},
				{Text: "--- FAIL: TestCoffeeLevel (0.00s)", Style: StyleError, Reveal: ms(2600)},
				{Text: "    coffee_test.go:12: want full mug, got empty", Style: StyleWarning, Reveal: ms(3000)},
				{Text: "FAIL\tgithub.com/Zachkp/zach-dev/internal/coffee\t0.001s", Style: StyleError, Reveal: ms(3500)},
			},
		},
	}
}

func defaultRewards() []Screen {
	return []Screen{
		{
			ID:      "reward-ship-it",
			Kind:    KindReward,
			Total:   ms(4000),
			Caption: "ship it",
		},
		{
			ID:    "reward-break",
			Kind:  KindReward,
			Total: ms(4000),
		},
	}
}
