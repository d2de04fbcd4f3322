package treesync

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/kyuff/es"
)

type codec interface {
	Encode(event es.Event) ([]byte, error)
	Decode(streamType, contentName string, b []byte) (es.Content, error)
	Register(streamType string, contentTypes ...es.Content) error
}

func newJSONCodec() *jsonCodec {
	return &jsonCodec{
		types: make(map[string]map[string]reflect.Type),
	}
}

// jsonCodec stores event content as JSON and decodes it back into the
// registered Go type of the content name.
type jsonCodec struct {
	mu    sync.RWMutex
	types map[string]map[string]reflect.Type
}

func (c *jsonCodec) Register(streamType string, contentTypes ...es.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	names, ok := c.types[streamType]
	if !ok {
		names = make(map[string]reflect.Type)
		c.types[streamType] = names
	}

	for _, content := range contentTypes {
		typ := reflect.TypeOf(content)
		if typ.Kind() == reflect.Pointer {
			return fmt.Errorf("[treesync] register %s.%s: content must not be a pointer", streamType, content.EventName())
		}

		name := content.EventName()
		if existing, ok := names[name]; ok && existing != typ {
			return fmt.Errorf("[treesync] register %s.%s: already registered as %s", streamType, name, existing)
		}

		names[name] = typ
	}

	return nil
}

func (c *jsonCodec) Encode(event es.Event) ([]byte, error) {
	if event.Content == nil {
		return nil, fmt.Errorf("[treesync] encode %s.%s #%d: missing content", event.StreamType, event.StreamID, event.EventNumber)
	}

	b, err := json.Marshal(event.Content)
	if err != nil {
		return nil, fmt.Errorf("[treesync] encode %s: %w", event.Content.EventName(), err)
	}

	return b, nil
}

func (c *jsonCodec) Decode(streamType, contentName string, b []byte) (es.Content, error) {
	c.mu.RLock()
	typ, ok := c.types[streamType][contentName]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("[treesync] decode %s.%s: unknown content", streamType, contentName)
	}

	ptr := reflect.New(typ)
	if err := json.Unmarshal(b, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("[treesync] decode %s.%s: %w", streamType, contentName, err)
	}

	content, ok := ptr.Elem().Interface().(es.Content)
	if !ok {
		return nil, fmt.Errorf("[treesync] decode %s.%s: %s is not es.Content", streamType, contentName, typ)
	}

	return content, nil
}
