package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-postrpc/internal/model/post"
	"github.com/rs/zerolog"
)

// ProductCounter counts rows in the product table.
type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

// PostService implements the post procedures.
type PostService struct {
	products ProductCounter
}

func NewPostService(products ProductCounter) *PostService {
	return &PostService{products: products}
}

// Hello counts products and greets with the count.
//
// text only goes to the request logger; the response depends on the count alone.
func (s *PostService) Hello(ctx context.Context, text string) (*post.HelloResponse, error) {
	count, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("text", text).
		Int64("product_count", count).
		Msg("hello received")

	return &post.HelloResponse{
		Greeting: fmt.Sprintf("Hello %d", count),
	}, nil
}

// SecretMessage is only reachable by authenticated callers.
func (s *PostService) SecretMessage() string {
	return post.SecretMessage
}
