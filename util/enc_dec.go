package util

import (
	"encoding/json"
)

// EncoderDecoder converts stored values to and from their wire form.
type EncoderDecoder[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (*T, error)
}

type JsonEncDec[T any] struct{}

var _ EncoderDecoder[any] = new(JsonEncDec[any])

func NewJsonEncoderDecoder[T any]() *JsonEncDec[T] {
	return &JsonEncDec[T]{}
}

func (encdec *JsonEncDec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (encdec *JsonEncDec[T]) Decode(data []byte) (*T, error) {
	var res T
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DecodeAll decodes every item, failing on the first malformed one.
func DecodeAll[T any](encdec EncoderDecoder[T], items []string) ([]T, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		v, err := encdec.Decode([]byte(item))
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, nil
}
