package flatkey

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalCodecCreated   = capitan.NewSignal("flatkey.codec.created", "Composite codec instantiated")
	SignalSchemaResolved = capitan.NewSignal("flatkey.schema.resolved", "Schema resolution finished")
	SignalEncodeStart    = capitan.NewSignal("flatkey.encode.start", "Encode operation beginning")
	SignalEncodeComplete = capitan.NewSignal("flatkey.encode.complete", "Encode operation finished")
	SignalDecodeStart    = capitan.NewSignal("flatkey.decode.start", "Decode operation beginning")
	SignalDecodeComplete = capitan.NewSignal("flatkey.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyModel      = capitan.NewStringKey("model")
	KeyFieldCount = capitan.NewIntKey("field_count")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitCodecCreated emits an event when a composite codec is created.
func emitCodecCreated(ctx context.Context, model string) {
	capitan.Emit(ctx, SignalCodecCreated,
		KeyModel.Field(model),
	)
}

// emitSchemaResolved emits an event when schema resolution finishes.
func emitSchemaResolved(ctx context.Context, model string, fields int, duration time.Duration, err error) {
	eventFields := []capitan.Field{
		KeyModel.Field(model),
		KeyFieldCount.Field(fields),
		KeyDuration.Field(duration),
	}
	if err != nil {
		eventFields = append(eventFields, KeyError.Field(err))
		capitan.Error(ctx, SignalSchemaResolved, eventFields...)
	} else {
		capitan.Emit(ctx, SignalSchemaResolved, eventFields...)
	}
}

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, model string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyModel.Field(model),
	)
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, model string, fields int, duration time.Duration, err error) {
	eventFields := []capitan.Field{
		KeyModel.Field(model),
		KeyFieldCount.Field(fields),
		KeyDuration.Field(duration),
	}
	if err != nil {
		eventFields = append(eventFields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, eventFields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, eventFields...)
	}
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, model string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyModel.Field(model),
	)
}

// emitDecodeComplete emits an event when decode finishes.
func emitDecodeComplete(ctx context.Context, model string, fields int, duration time.Duration, err error) {
	eventFields := []capitan.Field{
		KeyModel.Field(model),
		KeyFieldCount.Field(fields),
		KeyDuration.Field(duration),
	}
	if err != nil {
		eventFields = append(eventFields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, eventFields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, eventFields...)
	}
}
