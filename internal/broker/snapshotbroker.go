package broker

// Subscription is one consumer's handle on a published stream. C carries
// payloads with a buffer of one: a slow consumer skips intermediate
// payloads and always sees the latest one next.
type Subscription[TID comparable, TPayload any] struct {
	ID TID
	C  chan TPayload
}

type publishContent[TID comparable, TPayload any] struct {
	ID      TID
	Payload TPayload
}

// SnapshotBroker fans the latest payload per ID out to any number of
// subscribers. New subscribers are immediately primed with the most recent
// payload for their ID so a display that connects mid-game renders without
// waiting for the next host action.
//
// All bookkeeping lives in the Start goroutine; the exported methods only
// exchange messages with it, so the broker needs no locks.
type SnapshotBroker[TID comparable, TPayload any] struct {
	stopChannel        chan struct{}
	publishChannel     chan publishContent[TID, TPayload]
	subscribeChannel   chan *Subscription[TID, TPayload]
	unsubscribeChannel chan *Subscription[TID, TPayload]
	dropChannel        chan TID
}

// NewSnapshotBroker creates a broker. Call Start in a goroutine and Stop to
// shut it down.
func NewSnapshotBroker[TID comparable, TPayload any]() *SnapshotBroker[TID, TPayload] {
	return &SnapshotBroker[TID, TPayload]{
		stopChannel:        make(chan struct{}),
		publishChannel:     make(chan publishContent[TID, TPayload]),
		subscribeChannel:   make(chan *Subscription[TID, TPayload]),
		unsubscribeChannel: make(chan *Subscription[TID, TPayload]),
		dropChannel:        make(chan TID),
	}
}

// Start listens for publish, subscribe, and unsubscribe events. It blocks
// until Stop is called, so it should be called in a goroutine.
func (b *SnapshotBroker[TID, TPayload]) Start() {
	latest := map[TID]TPayload{}
	published := map[TID]bool{}
	subscribers := map[TID][]*Subscription[TID, TPayload]{}

	for {
		select {
		case <-b.stopChannel:
			for _, subs := range subscribers {
				for _, sub := range subs {
					close(sub.C)
				}
			}
			return

		case subscription := <-b.subscribeChannel:
			subscribers[subscription.ID] = append(subscribers[subscription.ID], subscription)
			if published[subscription.ID] {
				send(subscription, latest[subscription.ID])
			}

		case publication := <-b.publishChannel:
			latest[publication.ID] = publication.Payload
			published[publication.ID] = true
			for _, sub := range subscribers[publication.ID] {
				send(sub, publication.Payload)
			}

		case subscription := <-b.unsubscribeChannel:
			subs := subscribers[subscription.ID]
			for i, sub := range subs {
				if sub == subscription {
					subscribers[subscription.ID] = append(subs[:i], subs[i+1:]...)
					close(sub.C)
					break
				}
			}
			if len(subscribers[subscription.ID]) == 0 {
				delete(subscribers, subscription.ID)
			}

		case id := <-b.dropChannel:
			for _, sub := range subscribers[id] {
				close(sub.C)
			}
			delete(subscribers, id)
			delete(latest, id)
			delete(published, id)
		}
	}
}

// send delivers latest-wins: when the subscriber has not consumed the
// previous payload, it is replaced rather than queued.
func send[TID comparable, TPayload any](sub *Subscription[TID, TPayload], payload TPayload) {
	for {
		select {
		case sub.C <- payload:
			return
		default:
		}
		select {
		case <-sub.C:
		default:
		}
	}
}

// Stop shuts the broker down and closes every subscription channel.
func (b *SnapshotBroker[TID, TPayload]) Stop() {
	close(b.stopChannel)
}

// Subscribe registers a consumer for the given ID. If a payload has already
// been published for the ID, it arrives on the subscription immediately.
func (b *SnapshotBroker[TID, TPayload]) Subscribe(id TID) *Subscription[TID, TPayload] {
	subscription := &Subscription[TID, TPayload]{
		ID: id,
		C:  make(chan TPayload, 1),
	}
	b.subscribeChannel <- subscription
	return subscription
}

// Unsubscribe removes the subscription and closes its channel.
func (b *SnapshotBroker[TID, TPayload]) Unsubscribe(subscription *Subscription[TID, TPayload]) {
	b.unsubscribeChannel <- subscription
}

// Publish broadcasts payload to every subscriber of the ID and stores it
// for future subscribers.
func (b *SnapshotBroker[TID, TPayload]) Publish(id TID, payload TPayload) {
	b.publishChannel <- publishContent[TID, TPayload]{ID: id, Payload: payload}
}

// Drop forgets the ID: its stored payload is discarded and every
// subscription for it is closed. Used when a session expires.
func (b *SnapshotBroker[TID, TPayload]) Drop(id TID) {
	b.dropChannel <- id
}
