package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"
)

// Artifact paths relative to the data directory. These are produced by the
// offline ingestion pipeline and are consumed read-only.
const (
	recipesFile    = "data/cleaned/cleaned_recipes.json"
	embeddingsFile = "embeddings/recipe_embeddings.npy"
	idMapFile      = "embeddings/id_mapping.csv"
)

// recipeRow mirrors the column names of the cleaned dataset on disk.
type recipeRow struct {
	RecipeID    int      `json:"recipe_id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients_list"`
	Steps       []string `json:"steps_list"`
	Calories    *float64 `json:"Calories"`
	Fat         *float64 `json:"FatContent"`
	Carbs       *float64 `json:"CarbohydrateContent"`
	Protein     *float64 `json:"ProteinContent"`
}

// Store holds the recipe records and their embedding matrix as one unit.
// Row i of the matrix belongs to records[i]; keeping both behind a single
// type is what enforces that invariant. A Store is immutable after Load and
// safe for concurrent readers.
type Store struct {
	records []model.Recipe
	vectors []float32 // row-major, len == len(records)*dim
	dim     int
}

// Load reads the recipe dataset, the embedding matrix and the id mapping from
// dataDir. Any missing or corrupt artifact is a boot-time error; the caller is
// expected to treat it as fatal rather than degrade to empty search results.
func Load(dataDir string) (*Store, error) {
	rows, err := loadRecipes(filepath.Join(dataDir, recipesFile))
	if err != nil {
		return nil, err
	}

	vectors, n, dim, err := loadEmbeddings(filepath.Join(dataDir, embeddingsFile))
	if err != nil {
		return nil, err
	}
	if n > len(rows) {
		return nil, fmt.Errorf("embedding matrix has %d rows but dataset has only %d records", n, len(rows))
	}

	// Records beyond the matrix were never embedded and cannot be retrieved.
	rows = rows[:n]

	records := make([]model.Recipe, len(rows))
	for i, r := range rows {
		records[i] = model.Recipe{
			RecipeID:    r.RecipeID,
			Title:       r.Title,
			Ingredients: r.Ingredients,
			Steps:       r.Steps,
			Calories:    r.Calories,
			Fat:         r.Fat,
			Carbs:       r.Carbs,
			Protein:     r.Protein,
		}
	}

	if err := verifyIDMap(filepath.Join(dataDir, idMapFile), records); err != nil {
		return nil, err
	}

	return &Store{records: records, vectors: vectors, dim: dim}, nil
}

func loadRecipes(path string) ([]recipeRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe dataset: %w", err)
	}

	var rows []recipeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse recipe dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("recipe dataset %s is empty", path)
	}

	return rows, nil
}

func loadEmbeddings(path string) ([]float32, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open embedding matrix: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read npy header: %w", err)
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, 0, 0, fmt.Errorf("embedding matrix must be 2-dimensional, got shape %v", shape)
	}
	n, dim := shape[0], shape[1]
	if n == 0 || dim == 0 {
		return nil, 0, 0, fmt.Errorf("embedding matrix is empty, shape %v", shape)
	}

	var data []float32
	if strings.Contains(r.Header.Descr.Type, "f8") {
		// Tolerate float64 exports of the matrix.
		var wide []float64
		if err := r.Read(&wide); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to read embedding matrix: %w", err)
		}
		data = make([]float32, len(wide))
		for i, v := range wide {
			data[i] = float32(v)
		}
	} else if err := r.Read(&data); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read embedding matrix: %w", err)
	}
	if len(data) != n*dim {
		return nil, 0, 0, fmt.Errorf("embedding matrix has %d values, expected %d", len(data), n*dim)
	}

	return data, n, dim, nil
}

// verifyIDMap cross-checks the recipe_id column of the id mapping against the
// loaded records. The mapping is written by the same job that builds the
// matrix, so a mismatch means the artifacts come from different runs.
func verifyIDMap(path string, records []model.Recipe) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open id mapping: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read id mapping header: %w", err)
	}

	idCol := -1
	for i, name := range header {
		if name == "recipe_id" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return fmt.Errorf("id mapping %s has no recipe_id column", path)
	}

	for row := 0; row < len(records); row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			return fmt.Errorf("id mapping ends at row %d, expected %d rows", row, len(records))
		}
		if err != nil {
			return fmt.Errorf("failed to read id mapping row %d: %w", row, err)
		}

		id, err := strconv.Atoi(rec[idCol])
		if err != nil {
			return fmt.Errorf("id mapping row %d has invalid recipe_id %q", row, rec[idCol])
		}
		if id != records[row].RecipeID {
			return fmt.Errorf("id mapping row %d points at recipe %d but dataset has %d", row, id, records[row].RecipeID)
		}
	}

	return nil
}

// Total returns the number of searchable records.
func (s *Store) Total() int {
	return len(s.records)
}

// Dim returns the embedding dimensionality.
func (s *Store) Dim() int {
	return s.dim
}

// Get hydrates the record at the given matrix row.
func (s *Store) Get(row int) model.Recipe {
	return s.records[row]
}

// Search returns the top-k rows by inner product against the query vector,
// highest score first. Vectors are normalized at index-build time, so inner
// product is cosine similarity. k greater than Total is clamped; ties break
// on the lower row so repeated searches are deterministic.
func (s *Store) Search(query []float32, k int) (scores []float32, rows []int) {
	total := len(s.records)
	if k > total {
		k = total
	}
	if k <= 0 {
		return nil, nil
	}

	all := make([]int, total)
	sims := make([]float32, total)
	for i := 0; i < total; i++ {
		all[i] = i
		sims[i] = dot(query, s.vectors[i*s.dim:(i+1)*s.dim])
	}

	sort.SliceStable(all, func(a, b int) bool {
		return sims[all[a]] > sims[all[b]]
	})

	rows = all[:k]
	scores = make([]float32, k)
	for i, row := range rows {
		scores[i] = sims[row]
	}
	return scores, rows
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
