package services

import (
  "context"
  "encoding/json"
  "errors"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/gadgetvault-backend/internal/apierr"
  "github.com/yungbote/gadgetvault-backend/internal/cache"
  "github.com/yungbote/gadgetvault-backend/internal/codename"
  "github.com/yungbote/gadgetvault-backend/internal/logger"
  "github.com/yungbote/gadgetvault-backend/internal/repos"
  "github.com/yungbote/gadgetvault-backend/internal/requestdata"
  "github.com/yungbote/gadgetvault-backend/internal/types"
)

// maxCodenameAttempts bounds codename regeneration when creation hits the
// unique index. The vocabulary is small, so collisions are routine.
const maxCodenameAttempts = 5

type GadgetService interface {
  CreateGadget(ctx context.Context, name string) (*types.Gadget, error)
  GetGadget(ctx context.Context, gadgetID uuid.UUID) (*types.Gadget, error)
  ListGadgets(ctx context.Context, status *types.GadgetStatus, search string) ([]*types.Gadget, error)
  UpdateGadget(ctx context.Context, gadgetID uuid.UUID, name *string, status *types.GadgetStatus) (*types.Gadget, error)
  UpdateGadgetName(ctx context.Context, gadgetID uuid.UUID, name string) (*types.Gadget, error)
  DecommissionGadget(ctx context.Context, gadgetID uuid.UUID) (*types.Gadget, error)
  SelfDestructGadget(ctx context.Context, gadgetID uuid.UUID) (*types.Gadget, string, error)
}

type gadgetService struct {
  db           *gorm.DB
  log          *logger.Logger
  gadgetRepo   repos.GadgetRepo
  cacheService cache.CacheService
  cacheTTL     time.Duration

  // Overridable in tests to force codename collisions.
  genCodename    func() string
  genProbability func() int
}

func NewGadgetService(db *gorm.DB, log *logger.Logger, gadgetRepo repos.GadgetRepo, cacheService cache.CacheService, cacheTTL time.Duration) GadgetService {
  serviceLog := log.With("service", "GadgetService")
  if cacheTTL <= 0 {
    cacheTTL = cache.DefaultTTL
  }
  return &gadgetService{
    db:             db,
    log:            serviceLog,
    gadgetRepo:     gadgetRepo,
    cacheService:   cacheService,
    cacheTTL:       cacheTTL,
    genCodename:    codename.Generate,
    genProbability: codename.MissionProbability,
  }
}

func (gs *gadgetService) CreateGadget(ctx context.Context, name string) (*types.Gadget, error) {
  name = strings.TrimSpace(name)
  if name == "" {
    return nil, apierr.Validation("gadget name is required")
  }

  var createdBy uuid.UUID
  if rd := requestdata.GetRequestData(ctx); rd != nil {
    createdBy = rd.UserID
  }

  var created *types.Gadget
  for attempt := 0; attempt < maxCodenameAttempts; attempt++ {
    gadget := &types.Gadget{
      Name:                      name,
      Codename:                  gs.genCodename(),
      Status:                    types.GadgetStatusAvailable,
      MissionSuccessProbability: gs.genProbability(),
      CreatedBy:                 createdBy,
    }
    result, err := gs.gadgetRepo.Create(ctx, nil, gadget)
    if err != nil {
      if errors.Is(err, gorm.ErrDuplicatedKey) {
        gs.log.Debug("Codename collision, regenerating", "codename", gadget.Codename, "attempt", attempt+1)
        continue
      }
      gs.log.Error("Failed to create gadget", "error", err)
      return nil, apierr.BackendUnavailable(err)
    }
    created = result
    break
  }
  if created == nil {
    return nil, apierr.DuplicateCodename(errors.New("exhausted codename generation attempts"))
  }

  available := types.GadgetStatusAvailable
  gs.invalidate(ctx,
    cache.GadgetListKey(nil, ""),
    cache.GadgetListKey(&available, ""),
  )

  return created, nil
}

func (gs *gadgetService) GetGadget(ctx context.Context, gadgetID uuid.UUID) (*types.Gadget, error) {
  key := cache.GadgetKey(gadgetID)
  if raw, ok := gs.cacheGet(ctx, key); ok {
    var cached types.Gadget
    if err := json.Unmarshal([]byte(raw), &cached); err == nil {
      return &cached, nil
    }
    gs.log.Warn("Discarding undecodable cache entry", "key", key)
  }

  gadget, err := gs.gadgetRepo.GetByID(ctx, nil, gadgetID)
  if err != nil {
    return nil, gs.storeErr(gadgetID, err)
  }

  gs.cachePut(ctx, key, gadget)
  return gadget, nil
}

func (gs *gadgetService) ListGadgets(ctx context.Context, status *types.GadgetStatus, search string) ([]*types.Gadget, error) {
  key := cache.GadgetListKey(status, search)
  if raw, ok := gs.cacheGet(ctx, key); ok {
    var cached []*types.Gadget
    if err := json.Unmarshal([]byte(raw), &cached); err == nil {
      return cached, nil
    }
    gs.log.Warn("Discarding undecodable cache entry", "key", key)
  }

  gadgets, err := gs.gadgetRepo.List(ctx, nil, repos.GadgetFilter{Status: status, Search: search})
  if err != nil {
    gs.log.Error("Failed to list gadgets", "error", err)
    return nil, apierr.BackendUnavailable(err)
  }

  gs.cachePut(ctx, key, gadgets)
  return gadgets, nil
}

func (gs *gadgetService) UpdateGadget(ctx context.Context, gadgetID uuid.UUID, name *string, status *types.GadgetStatus) (*types.Gadget, error) {
  updates := map[string]interface{}{}

  if name != nil {
    trimmed := strings.TrimSpace(*name)
    if trimmed == "" {
      return nil, apierr.Validation("gadget name is required")
    }
    updates["name"] = trimmed
  }

  if len(updates) == 0 && status == nil {
    return nil, apierr.Validation("nothing to update")
  }

  var updated *types.Gadget
  var previousStatus types.GadgetStatus
  txErr := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if status != nil {
      current, err := gs.gadgetRepo.GetByID(ctx, tx, gadgetID)
      if err != nil {
        return gs.storeErr(gadgetID, err)
      }
      previousStatus = current.Status
      if !current.Status.CanTransitionTo(*status) {
        if current.Status.IsTerminal() {
          return apierr.AlreadyTerminal("gadget %s is already %s", gadgetID, current.Status)
        }
        return apierr.Validation("illegal status transition %s -> %s", current.Status, *status)
      }
      updates["status"] = *status
    }
    result, err := gs.gadgetRepo.UpdateFields(ctx, tx, gadgetID, updates)
    if err != nil {
      return gs.storeErr(gadgetID, err)
    }
    updated = result
    return nil
  })
  if txErr != nil {
    return nil, txErr
  }

  keys := []string{cache.GadgetKey(gadgetID), cache.GadgetListKey(nil, "")}
  if status != nil {
    keys = append(keys,
      cache.GadgetListKey(&previousStatus, ""),
      cache.GadgetListKey(status, ""),
    )
  }
  gs.invalidate(ctx, keys...)

  return updated, nil
}

func (gs *gadgetService) UpdateGadgetName(ctx context.Context, gadgetID uuid.UUID, name string) (*types.Gadget, error) {
  return gs.UpdateGadget(ctx, gadgetID, &name, nil)
}

func (gs *gadgetService) DecommissionGadget(ctx context.Context, gadgetID uuid.UUID) (*types.Gadget, error) {
  return gs.terminate(ctx, gadgetID, types.GadgetStatusDecommissioned)
}

func (gs *gadgetService) SelfDestructGadget(ctx context.Context, gadgetID uuid.UUID) (*types.Gadget, string, error) {
  gadget, err := gs.terminate(ctx, gadgetID, types.GadgetStatusDestroyed)
  if err != nil {
    return nil, "", err
  }
  // The confirmation code is a freshly generated token with no
  // persistence or verification step behind it.
  return gadget, codename.ConfirmationCode(), nil
}

// terminate moves a gadget into one of the terminal states. Requesting a
// terminal transition on a gadget that is already terminal is an error,
// not a no-op: a double self-destruct is an operator mistake worth
// surfacing.
func (gs *gadgetService) terminate(ctx context.Context, gadgetID uuid.UUID, target types.GadgetStatus) (*types.Gadget, error) {
  var updated *types.Gadget
  var previousStatus types.GadgetStatus
  txErr := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    current, err := gs.gadgetRepo.GetByID(ctx, tx, gadgetID)
    if err != nil {
      return gs.storeErr(gadgetID, err)
    }
    if current.Status.IsTerminal() {
      return apierr.AlreadyTerminal("gadget %s is already %s", gadgetID, current.Status)
    }
    previousStatus = current.Status
    result, err := gs.gadgetRepo.SetStatus(ctx, tx, gadgetID, target)
    if err != nil {
      return gs.storeErr(gadgetID, err)
    }
    updated = result
    return nil
  })
  if txErr != nil {
    return nil, txErr
  }

  // Listing keys carrying a search term are deliberately left alone;
  // they self-correct at TTL expiry.
  available := types.GadgetStatusAvailable
  keys := []string{
    cache.GadgetKey(gadgetID),
    cache.GadgetListKey(nil, ""),
    cache.GadgetListKey(&available, ""),
    cache.GadgetListKey(&target, ""),
  }
  if previousStatus != types.GadgetStatusAvailable {
    keys = append(keys, cache.GadgetListKey(&previousStatus, ""))
  }
  gs.invalidate(ctx, keys...)

  return updated, nil
}

func (gs *gadgetService) storeErr(gadgetID uuid.UUID, err error) error {
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return apierr.NotFound("gadget %s not found", gadgetID)
  }
  gs.log.Error("Gadget store error", "gadget_id", gadgetID, "error", err)
  return apierr.BackendUnavailable(err)
}

// cacheGet degrades to a miss on any cache failure; the store stays
// authoritative.
func (gs *gadgetService) cacheGet(ctx context.Context, key string) (string, bool) {
  raw, ok, err := gs.cacheService.Get(ctx, key)
  if err != nil {
    gs.log.Warn("Cache read failed, falling back to store", "key", key, "error", err)
    return "", false
  }
  return raw, ok
}

func (gs *gadgetService) cachePut(ctx context.Context, key string, value interface{}) {
  payload, err := json.Marshal(value)
  if err != nil {
    gs.log.Warn("Failed to encode cache payload", "key", key, "error", err)
    return
  }
  if err := gs.cacheService.Set(ctx, key, string(payload), gs.cacheTTL); err != nil {
    gs.log.Warn("Cache write failed", "key", key, "error", err)
  }
}

// invalidate runs after the durable write has committed. A failed
// invalidation is logged and swallowed: the mutation already succeeded
// and stale entries expire at the TTL bound.
func (gs *gadgetService) invalidate(ctx context.Context, keys ...string) {
  if err := gs.cacheService.Invalidate(ctx, keys...); err != nil {
    gs.log.Warn("Cache invalidation failed", "keys", keys, "error", err)
  }
}
