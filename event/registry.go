package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

var (
	registryMu    sync.RWMutex
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &NodeCreatedPayload{})
// Pass nil if the event has no decodable payload
func RegisterType(name string, et EventType, payloadInstance any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(et))
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	registryMu.RLock()
	t, ok := typeToPayload[et]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// DecodePayload unmarshals JSON into the registered payload type of et
func DecodePayload(et EventType, data []byte) (any, error) {
	p := NewPayloadStruct(et)
	if p == nil {
		return nil, fmt.Errorf("no payload registered for %s", GetEventName(et))
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", GetEventName(et), err)
	}
	return p, nil
}

// EncodePayload marshals a payload for the journal
func EncodePayload(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// Journaled reports whether an event type describes a domain fact worth persisting
func Journaled(et EventType) bool {
	return et >= EventNodeCreated && et <= EventGraphCleared
}

// InitRegistry populates the registry with all graph events
// Safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		// Domain → Visual
		RegisterType("NodeCreated", EventNodeCreated, &NodeCreatedPayload{})
		RegisterType("NodeRemoved", EventNodeRemoved, &NodeRemovedPayload{})
		RegisterType("EdgeCreated", EventEdgeCreated, &EdgeCreatedPayload{})
		RegisterType("EdgeRemoved", EventEdgeRemoved, &EdgeRemovedPayload{})
		RegisterType("NodePositionChanged", EventNodePositionChanged, &NodePositionChangedPayload{})
		RegisterType("NodeMetadataChanged", EventNodeMetadataChanged, &NodeMetadataChangedPayload{})
		RegisterType("EdgeMetadataChanged", EventEdgeMetadataChanged, &EdgeMetadataChangedPayload{})
		RegisterType("EdgeHighlightChanged", EventEdgeHighlightChanged, &EdgeHighlightChangedPayload{})
		RegisterType("EdgeWeightChanged", EventEdgeWeightChanged, &EdgeWeightChangedPayload{})
		RegisterType("SelectionChanged", EventSelectionChanged, &SelectionChangedPayload{})
		RegisterType("GraphCleared", EventGraphCleared, &GraphClearedPayload{})

		// Visual → Domain
		RegisterType("DomainCommand", EventDomainCommand, nil) // morphism.DomainCommand, not journaled
		RegisterType("SelectionRequest", EventSelectionRequest, &SelectionChangedPayload{})
		RegisterType("MoveRequest", EventMoveRequest, &NodePositionChangedPayload{})

		// Feedback
		RegisterType("SoundRequest", EventSoundRequest, &SoundRequestPayload{})
	})
}
