package repos

import (
  "context"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/gadgetvault-backend/internal/logger"
  "github.com/yungbote/gadgetvault-backend/internal/types"
)

// GadgetFilter is a conjunction: exact status match and a case-insensitive
// free-text search over name or codename.
type GadgetFilter struct {
  Status    *types.GadgetStatus
  Search    string
}

type GadgetRepo interface {
  Create(ctx context.Context, tx *gorm.DB, gadget *types.Gadget) (*types.Gadget, error)
  GetByID(ctx context.Context, tx *gorm.DB, gadgetID uuid.UUID) (*types.Gadget, error)
  List(ctx context.Context, tx *gorm.DB, filter GadgetFilter) ([]*types.Gadget, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, gadgetID uuid.UUID, updates map[string]interface{}) (*types.Gadget, error)
  SetStatus(ctx context.Context, tx *gorm.DB, gadgetID uuid.UUID, status types.GadgetStatus) (*types.Gadget, error)
}

type gadgetRepo struct {
  db          *gorm.DB
  log         *logger.Logger
}

func NewGadgetRepo(db *gorm.DB, baseLog *logger.Logger) GadgetRepo {
  repoLog := baseLog.With("repo", "GadgetRepo")
  return &gadgetRepo{db: db, log: repoLog}
}

func (gr *gadgetRepo) Create(ctx context.Context, tx *gorm.DB, gadget *types.Gadget) (*types.Gadget, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  if gadget.ID == uuid.Nil {
    gadget.ID = uuid.New()
  }

  // The unique index on codename is the collision detector; a duplicate
  // surfaces as gorm.ErrDuplicatedKey for the caller to retry.
  if err := transaction.WithContext(ctx).Create(gadget).Error; err != nil {
    return nil, err
  }

  return gadget, nil
}

func (gr *gadgetRepo) GetByID(ctx context.Context, tx *gorm.DB, gadgetID uuid.UUID) (*types.Gadget, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  var result types.Gadget
  if err := transaction.WithContext(ctx).
    Where("id = ?", gadgetID).
    First(&result).Error; err != nil {
    return nil, err
  }

  return &result, nil
}

func (gr *gadgetRepo) List(ctx context.Context, tx *gorm.DB, filter GadgetFilter) ([]*types.Gadget, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  query := transaction.WithContext(ctx).Model(&types.Gadget{})
  if filter.Status != nil {
    query = query.Where("status = ?", *filter.Status)
  }
  if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
    pattern := "%" + search + "%"
    query = query.Where(
      transaction.Where("LOWER(name) LIKE ?", pattern).Or("LOWER(codename) LIKE ?", pattern),
    )
  }

  var results []*types.Gadget
  if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (gr *gadgetRepo) UpdateFields(ctx context.Context, tx *gorm.DB, gadgetID uuid.UUID, updates map[string]interface{}) (*types.Gadget, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  if len(updates) == 0 {
    return gr.GetByID(ctx, transaction, gadgetID)
  }

  // Copied so the stamp below never leaks into the caller's map.
  fields := make(map[string]interface{}, len(updates)+1)
  for k, v := range updates {
    fields[k] = v
  }

  // Entering a terminal state stamps decommissioned_at in the same UPDATE.
  if rawStatus, ok := fields["status"]; ok {
    if status, ok := rawStatus.(types.GadgetStatus); ok && status.IsTerminal() {
      if _, present := fields["decommissioned_at"]; !present {
        fields["decommissioned_at"] = time.Now().UTC()
      }
    }
  }

  res := transaction.WithContext(ctx).
    Model(&types.Gadget{}).
    Where("id = ?", gadgetID).
    Updates(fields)
  if res.Error != nil {
    return nil, res.Error
  }
  if res.RowsAffected == 0 {
    return nil, gorm.ErrRecordNotFound
  }

  return gr.GetByID(ctx, transaction, gadgetID)
}

func (gr *gadgetRepo) SetStatus(ctx context.Context, tx *gorm.DB, gadgetID uuid.UUID, status types.GadgetStatus) (*types.Gadget, error) {
  return gr.UpdateFields(ctx, tx, gadgetID, map[string]interface{}{"status": status})
}
