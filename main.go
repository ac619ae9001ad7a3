package main

import (
	"flag"
	"image"
	"log"

	"github.com/envtester/chaos-invaders/assets"
	"github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/fonts"
	"github.com/envtester/chaos-invaders/network"
	"github.com/envtester/chaos-invaders/scenes"
	"github.com/envtester/chaos-invaders/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(session *systems.MatchSession) *Game {
	fonts.LoadDefaults(config.HUD.FontSize)

	g := &Game{
		bounds: image.Rectangle{},
	}

	ctx := &scenes.Context{
		Changer: g,
		Session: session,
	}
	g.scene = scenes.NewMenuScene(ctx)

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	serverURL := flag.String("server", "", "controller base URL (overrides config)")
	arena := flag.String("arena", assets.DefaultArena, "arena to play on")
	seed := flag.Int64("seed", 0, "fixed RNG seed, 0 = random")
	telemetry := flag.Bool("telemetry", false, "show poll telemetry under the HUD")
	flag.Parse()

	// .env first, then the config file, then flags.
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}
	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *serverURL != "" {
		config.Network.ServerURL = *serverURL
	}
	if *seed != 0 {
		config.Debug.Seed = *seed
	}
	if *telemetry {
		config.Debug.ShowTelemetry = true
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetTPS(config.C.TPS)

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	client := network.NewClient(config.Network.ServerURL, config.Network.RequestTimeout)
	log.Printf("[main] controller at %s", client.BaseURL())
	layout := assets.NewLevelLoader().MustLoadArena(*arena)
	session := systems.NewMatchSession(client, systems.DefaultTuning(layout), systems.Hooks{})

	if err := ebiten.RunGame(NewGame(session)); err != nil {
		log.Fatal(err)
	}
}
