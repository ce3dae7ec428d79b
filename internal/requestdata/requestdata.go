package requestdata

import (
  "context"
  "github.com/google/uuid"
)

type ctxKey struct{}

var requestDataKey ctxKey

// RequestData carries the already-authenticated caller identity through
// the request context. The core services read it for attribution only;
// they never perform authentication themselves.
type RequestData struct {
  TokenString       string
  RefreshToken      string
  UserID            uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}
