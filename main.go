package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"hollowdeep/engine"
	"hollowdeep/grid"
	"hollowdeep/logging"
	"hollowdeep/logging/sinks"
	"hollowdeep/races"
)

const (
	dungeonHeight = 24
	dungeonWidth  = 66
	monsterCount  = 12
	energyPerAct  = 100
)

// simulation owns the world and steps it at a fixed rate. The hub reads
// snapshots; nothing outside the tick goroutine touches the world directly.
type simulation struct {
	mu    sync.Mutex
	world *engine.World
	rng   *rand.Rand
	over  bool
}

func main() {
	var (
		addr    string
		seed    int64
		tickMs  int
		verbose bool
	)
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.Int64Var(&seed, "seed", 1, "world seed")
	flag.IntVar(&tickMs, "tick", 250, "milliseconds per simulation tick")
	flag.BoolVar(&verbose, "v", false, "log debug events to the console")
	flag.Parse()

	hub := newHub()

	cfg := logging.DefaultConfig()
	if verbose {
		cfg.MinimumSeverity = logging.SeverityDebug
	}
	cfg.Fields = map[string]any{"seed": seed}
	router := logging.NewRouter(nil, cfg, []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)},
		{Name: "ws", Sink: hub},
	})
	defer router.Close(context.Background())

	sim, err := newSimulation(seed, router)
	if err != nil {
		log.Fatalf("failed to build simulation: %v", err)
	}

	stop := make(chan struct{})
	go sim.run(hub, time.Duration(tickMs)*time.Millisecond, stop)
	defer close(stop)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	http.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		stats := router.Stats()
		snap := sim.snapshot()
		payload := struct {
			Status      string `json:"status"`
			ServerTime  int64  `json:"serverTime"`
			Tick        uint64 `json:"tick"`
			Monsters    int    `json:"monsters"`
			Observers   int    `json:"observers"`
			EventsTotal uint64 `json:"eventsTotal"`
			SinkErrors  uint64 `json:"sinkErrors"`
		}{
			Status:      "ok",
			ServerTime:  time.Now().UnixMilli(),
			Tick:        snap.Tick,
			Monsters:    len(snap.Monsters),
			Observers:   hub.ObserverCount(),
			EventsTotal: stats.EventsTotal,
			SinkErrors:  stats.SinkErrors,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}

		id, sub := hub.Subscribe(conn)

		initial, err := json.Marshal(sim.snapshot())
		if err != nil {
			log.Printf("failed to marshal initial snapshot for %s: %v", id, err)
			hub.Disconnect(id)
			return
		}
		if err := sub.send(initial); err != nil {
			hub.Disconnect(id)
			return
		}

		// Observers send nothing meaningful; the read loop only detects
		// disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Disconnect(id)
				return
			}
		}
	})

	log.Printf("dungeon observer listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// newSimulation carves a dungeon, places the player, and seeds it with
// monsters drawn from the embedded bestiary.
func newSimulation(seed int64, pub logging.Publisher) (*simulation, error) {
	bestiary, err := races.LoadDefault()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	g := carveDungeon(rng)

	player := &engine.Player{
		Pos:       grid.Point{Y: dungeonHeight / 2, X: dungeonWidth / 2},
		HP:        120,
		MaxHP:     120,
		Level:     12,
		AC:        24,
		SaveSkill: 40,
		DexSave:   30,
		Noise:     1 << 20,
	}
	for s := engine.StatStr; s < engine.StatMax; s++ {
		player.Stats[s] = 12
	}

	world := engine.NewWorld(engine.Config{
		Grid:      g,
		Player:    player,
		Seed:      seed,
		Publisher: pub,
		Options:   engine.DefaultOptions(),
	})

	placed := 0
	for tries := 0; placed < monsterCount && tries < 2000; tries++ {
		p := grid.Point{Y: 1 + rng.Intn(dungeonHeight-2), X: 1 + rng.Intn(dungeonWidth-2)}
		if grid.Distance(p, player.Pos) < 4 {
			continue
		}
		race := bestiary[rng.Intn(len(bestiary))]
		if _, ok := world.SpawnMonster(race, p); ok {
			placed++
		}
	}
	if placed == 0 {
		log.Printf("warning: no monsters placed")
	}

	g.RebuildFlow(player.Pos, grid.FlowDepthMax)

	return &simulation{world: world, rng: rng}, nil
}

// carveDungeon scatters wall stubs and doors over an open bordered field.
// Enough to give the decision engine corridors, cover, and doors to work
// with; not a real level generator.
func carveDungeon(rng *rand.Rand) *grid.Grid {
	g := grid.New(dungeonHeight, dungeonWidth)

	for i := 0; i < 14; i++ {
		y := 2 + rng.Intn(dungeonHeight-4)
		x := 2 + rng.Intn(dungeonWidth-4)
		length := 3 + rng.Intn(6)
		horizontal := rng.Intn(2) == 0

		for j := 0; j < length; j++ {
			p := grid.Point{Y: y, X: x}
			if horizontal {
				p.X += j
			} else {
				p.Y += j
			}
			if !g.InBoundsFully(p) {
				break
			}
			g.At(p).Feature = grid.FeatGranite
		}

		// Punch a door through the middle of some walls.
		if length >= 4 && rng.Intn(2) == 0 {
			p := grid.Point{Y: y, X: x}
			if horizontal {
				p.X += length / 2
			} else {
				p.Y += length / 2
			}
			if g.InBoundsFully(p) {
				c := g.At(p)
				c.Feature = grid.FeatClosedDoor
				if rng.Intn(3) == 0 {
					c.Feature = grid.FeatLockedDoor
					c.DoorPower = 1 + rng.Intn(4)
				}
			}
		}
	}

	// The player start must stay open.
	center := grid.Point{Y: dungeonHeight / 2, X: dungeonWidth / 2}
	g.At(center).Feature = grid.FeatFloor

	return g
}

// run drives the fixed-rate tick loop until the stop channel closes.
func (s *simulation) run(hub *Hub, tick time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.step()
			hub.BroadcastSnapshot(s.snapshot())
			if s.finished() {
				log.Printf("the player has died; simulation halted")
				return
			}
		}
	}
}

// step advances the world one tick: the player wanders, monsters bank
// energy, and every monster with a full budget takes its turn.
func (s *simulation) step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.world
	if s.over {
		return
	}

	w.AdvanceTurn()
	s.wanderPlayer()

	for i := 1; i < w.Arena.Max(); i++ {
		m := w.Arena.Get(i)
		if m == nil || m.Race == nil {
			continue
		}
		m.Energy += m.Race.Speed / 10
	}

	w.ProcessMonsters(energyPerAct)
	w.ClearNice()

	if w.FlowDirty() {
		w.Grid.RebuildFlow(w.Player.Pos, grid.FlowDepthMax)
	}
	w.ViewDirty()
	w.Player.Disturbed = false

	if w.Player.Dead {
		s.over = true
	}
}

// wanderPlayer gives the dungeon a moving quarry: the player drifts one
// random step most ticks, leaving a scent trail for monsters to follow.
func (s *simulation) wanderPlayer() {
	w := s.world
	if s.rng.Intn(3) == 0 {
		return
	}

	d := grid.DirsClockwise[s.rng.Intn(len(grid.DirsClockwise))]
	dest := grid.Step(w.Player.Pos, d)
	if !w.Grid.IsEmpty(dest) {
		return
	}

	w.Grid.MoveOccupant(w.Player.Pos, dest)
	w.Player.Pos = dest
	w.Grid.RebuildFlow(dest, grid.FlowDepthMax)
}

// snapshot builds the observer view of the current world state.
func (s *simulation) snapshot() snapshotMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.world
	snap := snapshotMessage{
		Type: "state",
		Tick: w.Turn(),
		Player: playerView{
			Y:     w.Player.Pos.Y,
			X:     w.Player.Pos.X,
			HP:    w.Player.HP,
			MaxHP: w.Player.MaxHP,
			Dead:  w.Player.Dead,
		},
		ServerTime: time.Now().UnixMilli(),
	}

	for i := 1; i < w.Arena.Max(); i++ {
		m := w.Arena.Get(i)
		if m == nil || m.Race == nil {
			continue
		}
		snap.Monsters = append(snap.Monsters, monsterView{
			Slot:    m.Slot,
			Race:    m.Race.Name,
			Y:       m.Pos.Y,
			X:       m.Pos.X,
			HP:      m.HP,
			MaxHP:   m.MaxHP,
			Visible: m.Visible,
			Asleep:  m.Timed[engine.MonSleep] > 0,
		})
	}

	return snap
}

func (s *simulation) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}
