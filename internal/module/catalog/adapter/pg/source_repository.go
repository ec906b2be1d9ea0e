package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

// SourceRepository はソースコレクションの永続化アダプターです
type SourceRepository struct {
	db DBTX
}

// NewSourceRepository は新しいソースリポジトリを作成します
func NewSourceRepository(db DBTX) *SourceRepository {
	return &SourceRepository{db: db}
}

var _ domain.SourceRepository = (*SourceRepository)(nil)

const sourceColumns = `id, name, url_to_search_result, created_at, updated_at`

// GetByName は名前でソースを取得します。見つからなければ (nil, nil)。
func (r *SourceRepository) GetByName(ctx context.Context, name domain.SourceName) (*domain.Source, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE name = $1`,
		string(name),
	)

	source, err := scanSource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get source by name: %w", err)
	}

	return source, nil
}

// FindOrCreate は名前でソースを検索し、無ければ作成します。
// 挿入はON CONFLICT DO NOTHINGで行い、競合に敗れた場合は勝者の行を
// 読み直して返すため、同名ソースの行は並行作成下でも1つしかできません。
func (r *SourceRepository) FindOrCreate(ctx context.Context, name domain.SourceName, url string) (*domain.Source, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("source name %q is not one of the available sources", name)
	}

	var urlPtr *string
	if url != "" {
		normalized := domain.NormalizeSearchURL(url)
		if err := domain.ValidateSearchURL(normalized); err != nil {
			return nil, err
		}
		urlPtr = &normalized
	}

	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO sources (name, url_to_search_result)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING `+sourceColumns,
		string(name), urlPtr,
	)

	source, err := scanSource(row)
	if err != nil {
		// 名前の競合はDO NOTHINGで行なし、URLの競合は一意制約違反として
		// 返る。どちらも「先に作られた」ケースなので勝者の行を読み直す。
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			winner, rereadErr := r.GetByName(ctx, name)
			if rereadErr != nil {
				return nil, rereadErr
			}
			if winner == nil {
				return nil, fmt.Errorf("failed to create source: %w", err)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	return source, nil
}

func scanSource(row pgx.Row) (*domain.Source, error) {
	var s domain.Source
	var name string
	if err := row.Scan(&s.ID, &name, &s.URLToSearchResult, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Name = domain.SourceName(name)
	return &s, nil
}
