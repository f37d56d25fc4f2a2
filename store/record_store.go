package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/conv"
)

// Snapshot 是某一代（generation）加载出来的不可变关系视图。
// Load 成功后整体替换，查询方持有的旧指针继续有效（copy-on-write），
// 因此任意多个查询可以无协调地并发读。
type Snapshot struct {
	// Generation 每次成功加载递增，索引构建方据此判断缓存是否过期
	Generation uint64

	Users    map[string]*core.User
	Articles map[string]*core.Article
	// Interactions 保留原始多条边，聚合在索引构建时做
	Interactions []core.Interaction

	// UserIDs / ArticleIDs 去重后按首次出现顺序排列
	UserIDs    []string
	ArticleIDs []string

	Stats LoadStats
}

// LoadStats 记录加载过程中被丢弃的行数。缺必填键的行跳过并计数，不算失败。
type LoadStats struct {
	SkippedUsers        int
	SkippedArticles     int
	SkippedInteractions int
	DuplicateUsers      int
	DuplicateArticles   int
	LoadedAt            time.Time
}

// RecordStore 持有三个关系的当前快照，是引擎里唯一可变的组件。
// Load 串行化执行；失败时保留上一个合法快照（fail static, not fail empty）。
type RecordStore struct {
	mu      sync.RWMutex
	loadMu  sync.Mutex // 串行化 Load，与读锁分离，加载期间查询不被阻塞
	current *Snapshot
}

func New() *RecordStore {
	return &RecordStore{}
}

// Load 从三个表格数据源加载关系并原子切换快照。
//
// 语义：
//   - 行级容错：缺 userId/itemId 的行跳过并计数
//   - 源不可读 → SOURCE_UNAVAILABLE；某关系没有任何合法行 → EMPTY_RELATION
//   - 任一关系失败则整体失败，当前快照不变、generation 不变
func (s *RecordStore) Load(ctx context.Context, users, items, interactions core.RowSource) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	var userRows, itemRows, interRows []core.Row
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) { userRows, err = readSource(egCtx, users); return })
	eg.Go(func() (err error) { itemRows, err = readSource(egCtx, items); return })
	eg.Go(func() (err error) { interRows, err = readSource(egCtx, interactions); return })
	if err := eg.Wait(); err != nil {
		return err
	}

	next := &Snapshot{
		Users:    make(map[string]*core.User, len(userRows)),
		Articles: make(map[string]*core.Article, len(itemRows)),
	}
	next.Stats.LoadedAt = time.Now()

	for _, row := range userRows {
		u, ok := parseUser(row)
		if !ok {
			next.Stats.SkippedUsers++
			continue
		}
		// 重复 userId 首次出现胜出，保证确定性
		if _, exists := next.Users[u.UserID]; exists {
			next.Stats.DuplicateUsers++
			continue
		}
		next.Users[u.UserID] = u
		next.UserIDs = append(next.UserIDs, u.UserID)
	}
	if len(next.Users) == 0 {
		return emptyRelation(users, "users")
	}

	for _, row := range itemRows {
		a, ok := parseArticle(row)
		if !ok {
			next.Stats.SkippedArticles++
			continue
		}
		if _, exists := next.Articles[a.ItemID]; exists {
			next.Stats.DuplicateArticles++
			continue
		}
		next.Articles[a.ItemID] = a
		next.ArticleIDs = append(next.ArticleIDs, a.ItemID)
	}
	if len(next.Articles) == 0 {
		return emptyRelation(items, "items")
	}

	next.Interactions = make([]core.Interaction, 0, len(interRows))
	for _, row := range interRows {
		in, ok := parseInteraction(row)
		if !ok {
			next.Stats.SkippedInteractions++
			continue
		}
		next.Interactions = append(next.Interactions, in)
	}
	if len(next.Interactions) == 0 {
		return emptyRelation(interactions, "interactions")
	}

	s.mu.Lock()
	if s.current != nil {
		next.Generation = s.current.Generation + 1
	} else {
		next.Generation = 1
	}
	s.current = next
	s.mu.Unlock()
	return nil
}

// Snapshot 返回当前快照指针；未加载过时返回 nil。
// 返回值对调用方只读，查询期间持有同一指针即可获得快照隔离。
func (s *RecordStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Generation 返回当前代数；未加载过为 0。
func (s *RecordStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0
	}
	return s.current.Generation
}

// GetUser 按 id 查用户。
func (s *RecordStore) GetUser(id string) (*core.User, bool) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, false
	}
	u, ok := snap.Users[id]
	return u, ok
}

// GetArticle 按 id 查物品。
func (s *RecordStore) GetArticle(id string) (*core.Article, bool) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, false
	}
	a, ok := snap.Articles[id]
	return a, ok
}

// UserIDs 返回去重后的 userId 列表（首次出现顺序）。
func (s *RecordStore) UserIDs() []string {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.UserIDs
}

// ArticleIDs 返回去重后的 itemId 列表（首次出现顺序）。
func (s *RecordStore) ArticleIDs() []string {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.ArticleIDs
}

func readSource(ctx context.Context, src core.RowSource) ([]core.Row, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		if core.GetDomainError(err) != nil {
			return nil, err
		}
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeSourceUnavailable,
			"store: read "+src.Name()+": "+err.Error())
	}
	return rows, nil
}

func emptyRelation(src core.RowSource, relation string) error {
	return core.NewDomainError(core.ModuleStore, core.ErrorCodeEmptyRelation,
		"store: relation "+relation+" from "+src.Name()+" has no valid rows")
}

// 列别名兼容不同导出端的命名（userId/personId、itemId/contentId 等价）。
func parseUser(row core.Row) (*core.User, bool) {
	id := row.Get("userId", "personId")
	if id == "" {
		return nil, false
	}
	return &core.User{
		UserID:    id,
		SessionID: row.Get("sessionId"),
		Agent:     row.Get("userAgent", "agent"),
		Region:    row.Get("userRegion", "region"),
		Country:   row.Get("userCountry", "country"),
	}, true
}

func parseArticle(row core.Row) (*core.Article, bool) {
	id := row.Get("itemId", "contentId")
	if id == "" {
		return nil, false
	}
	return &core.Article{
		ItemID:      id,
		Title:       row.Get("title"),
		Text:        row.Get("text", "body"),
		ContentType: row.Get("contentType"),
		URL:         row.Get("url"),
		Lang:        row.Get("lang", "language"),
		CreatedAt:   parseTimestamp(row.Get("timestamp", "createdAt")),
	}, true
}

func parseInteraction(row core.Row) (core.Interaction, bool) {
	userID := row.Get("userId", "personId")
	itemID := row.Get("itemId", "contentId")
	if userID == "" || itemID == "" {
		return core.Interaction{}, false
	}
	in := core.Interaction{
		UserID:    userID,
		ItemID:    itemID,
		EventType: row.Get("eventType"),
		Timestamp: parseTimestamp(row.Get("timestamp")),
	}
	if rating, ok := conv.ParseFloat(row.Get("eventStrength", "rating")); ok {
		in.Rating = rating
		in.HasRating = true
	}
	return in, true
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if unix, ok := conv.ParseInt64(s); ok {
		return time.Unix(unix, 0).UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
