// Package feed parses supplier price-list feeds. A feed is a YAML
// document describing one shop, its categories and its goods:
//
//	shop: Svyaznoy
//	categories:
//	  - id: 224
//	    name: Smartphones
//	goods:
//	  - id: 4216292
//	    category: 224
//	    name: Smartphone Apple iPhone XS Max 512GB (gold)
//	    model: apple/iphone/xs-max
//	    price: 110000
//	    price_rrc: 116990
//	    quantity: 14
//	    parameters:
//	      "Color": gold
//
// Parsing never touches the store; a feed either parses in full or is
// rejected before any catalog mutation happens.
package feed

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"orderdesk/internal/domain"
)

type Category struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type Good struct {
	ID         int64             `yaml:"id"`
	Category   int64             `yaml:"category"`
	Name       string            `yaml:"name"`
	Model      string            `yaml:"model"`
	Price      int64             `yaml:"price"`
	PriceRRC   int64             `yaml:"price_rrc"`
	Quantity   int               `yaml:"quantity"`
	Parameters map[string]string `yaml:"parameters"`
}

type Feed struct {
	Shop       string     `yaml:"shop"`
	Categories []Category `yaml:"categories"`
	Goods      []Good     `yaml:"goods"`
}

func Parse(data []byte) (*Feed, error) {
	var f Feed
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFeed, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Feed) validate() error {
	if f.Shop == "" {
		return fmt.Errorf("%w: missing shop name", domain.ErrMalformedFeed)
	}
	for i, c := range f.Categories {
		if c.ID == 0 || c.Name == "" {
			return fmt.Errorf("%w: categories[%d] needs id and name", domain.ErrMalformedFeed, i)
		}
	}
	for i, g := range f.Goods {
		switch {
		case g.ID == 0:
			return fmt.Errorf("%w: goods[%d] missing id", domain.ErrMalformedFeed, i)
		case g.Category == 0:
			return fmt.Errorf("%w: goods[%d] missing category", domain.ErrMalformedFeed, i)
		case g.Name == "":
			return fmt.Errorf("%w: goods[%d] missing name", domain.ErrMalformedFeed, i)
		case g.Price < 0 || g.PriceRRC < 0:
			return fmt.Errorf("%w: goods[%d] negative price", domain.ErrMalformedFeed, i)
		case g.Quantity < 0:
			return fmt.Errorf("%w: goods[%d] negative quantity", domain.ErrMalformedFeed, i)
		}
	}
	return nil
}
