package cache

import (
  "strings"
  "github.com/google/uuid"
  "github.com/yungbote/gadgetvault-backend/internal/types"
)

// Key derivation is load-bearing: invalidation in the gadget service must
// produce exactly the keys the read paths populate.

func GadgetKey(id uuid.UUID) string {
  return "gadget:" + id.String()
}

func GadgetListKey(status *types.GadgetStatus, search string) string {
  statusPart := "all"
  if status != nil {
    statusPart = string(*status)
  }
  searchPart := strings.ToLower(strings.TrimSpace(search))
  return "gadgets:" + statusPart + ":" + searchPart
}
