package theatre

// EventListener is called on its own goroutine, so it must not touch GL.
type EventListener func(theatre *Theatre, data interface{})

func (t *Theatre) AddEventListener(event string, callback EventListener) {
	t.listener[event] = append(t.listener[event], callback)
}

func (t *Theatre) invoke(event string, data interface{}) {
	for _, listener := range t.listener[event] {
		go listener(t, data)
	}
}
