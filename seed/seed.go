// Package seed loads the starter bookstore catalog on first boot.
package seed

import (
	"context"

	"kindle/log"
	"kindle/repository"

	"gorm.io/gorm"
)

var sampleBooks = []repository.Book{
	{
		Title:       "To Kill a Mockingbird",
		Author:      "Harper Lee",
		Price:       12.99,
		Description: "A novel about the serious issues of rape and racial inequality, told through the eyes of a young girl in the American South.",
		Category:    "Classic",
		Genre:       "Literature",
		Tags:        "classic, racism, justice, coming-of-age",
		PublishYear: 1960,
		Publisher:   "J. B. Lippincott & Co.",
		ISBN:        "978-0-06-112008-4",
		Pages:       281,
		Language:    "English",
		Rating:      4.3,
		Stock:       15,
	},
	{
		Title:       "1984",
		Author:      "George Orwell",
		Price:       10.99,
		Description: "A dystopian social science fiction novel about totalitarianism, surveillance, and thought control.",
		Category:    "Dystopian",
		Genre:       "Science Fiction",
		Tags:        "dystopian, surveillance, totalitarianism, orwell",
		PublishYear: 1949,
		Publisher:   "Secker & Warburg",
		ISBN:        "978-0-452-28423-4",
		Pages:       328,
		Language:    "English",
		Rating:      4.2,
		Stock:       20,
	},
	{
		Title:       "The Great Gatsby",
		Author:      "F. Scott Fitzgerald",
		Price:       11.50,
		Description: "A story of decadence and excess, set in the Jazz Age on Long Island.",
		Category:    "Classic",
		Genre:       "Literature",
		Tags:        "jazz age, american dream, wealth, love",
		PublishYear: 1925,
		Publisher:   "Charles Scribner's Sons",
		ISBN:        "978-0-7432-7356-5",
		Pages:       180,
		Language:    "English",
		Rating:      4.0,
		Stock:       10,
	},
	{
		Title:       "Pride and Prejudice",
		Author:      "Jane Austen",
		Price:       9.99,
		Description: "A romantic novel that charts the emotional development of the protagonist Elizabeth Bennet.",
		Category:    "Classic",
		Genre:       "Romance",
		Tags:        "romance, marriage, society, pride",
		PublishYear: 1813,
		Publisher:   "T. Egerton, Whitehall",
		ISBN:        "978-0-14-143951-8",
		Pages:       279,
		Language:    "English",
		Rating:      4.5,
		Stock:       18,
	},
	{
		Title:       "The Catcher in the Rye",
		Author:      "J.D. Salinger",
		Price:       10.50,
		Description: "A story about a few days in the life of Holden Caulfield, a young man who has been expelled from prep school.",
		Category:    "Fiction",
		Genre:       "Coming-of-age",
		Tags:        "coming of age, alienation, youth",
		PublishYear: 1951,
		Publisher:   "Little, Brown and Company",
		ISBN:        "978-0-316-76948-0",
		Pages:       234,
		Language:    "English",
		Rating:      3.8,
		Stock:       12,
	},
	{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Price:       14.99,
		Description: "A science fiction novel about the son of a noble family entrusted with the protection of the most valuable asset in the galaxy.",
		Category:    "Science Fiction",
		Genre:       "Space Opera",
		Tags:        "sci-fi, space, politics, religion",
		PublishYear: 1965,
		Publisher:   "Chilton Books",
		ISBN:        "978-0-441-17271-9",
		Pages:       412,
		Language:    "English",
		Rating:      4.7,
		Stock:       8,
	},
	{
		Title:       "The Lord of the Rings",
		Author:      "J.R.R. Tolkien",
		Price:       19.99,
		Description: "An epic high-fantasy novel about the struggle to destroy the One Ring, which was created by the Dark Lord Sauron.",
		Category:    "Fantasy",
		Genre:       "High Fantasy",
		Tags:        "fantasy, adventure, middle-earth, ring",
		PublishYear: 1954,
		Publisher:   "Allen & Unwin",
		ISBN:        "978-0-618-34625-4",
		Pages:       1178,
		Language:    "English",
		Rating:      4.8,
		Stock:       5,
	},
	{
		Title:       "Harry Potter and the Sorcerer's Stone",
		Author:      "J.K. Rowling",
		Price:       12.99,
		Description: "The first novel in the Harry Potter series about a young wizard who discovers his magical heritage.",
		Category:    "Fantasy",
		Genre:       "Children's Literature",
		Tags:        "magic, wizardry, hogwarts, fantasy",
		PublishYear: 1997,
		Publisher:   "Bloomsbury",
		ISBN:        "978-0-7475-3269-6",
		Pages:       223,
		Language:    "English",
		Rating:      4.8,
		Stock:       25,
	},
}

// Books inserts the sample catalog when the books table is empty.
func Books(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&repository.Book{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	books := make([]repository.Book, len(sampleBooks))
	copy(books, sampleBooks)
	for i := range books {
		books[i].CoverImage = repository.DefaultCoverImage
	}
	if err := db.WithContext(ctx).Create(&books).Error; err != nil {
		return err
	}
	log.GetLogger(ctx).Infof("seeded %d books", len(books))
	return nil
}
