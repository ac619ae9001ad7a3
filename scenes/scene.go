package scenes

import "github.com/envtester/chaos-invaders/systems"

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Context is what every scene shares.
type Context struct {
	Changer SceneChanger
	Session *systems.MatchSession
}
