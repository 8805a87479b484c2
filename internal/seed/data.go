package seed

import "go-catalog-ws/internal/service"

// Products is the fixture catalog loaded by Run
var Products = []service.CreateProductRequest{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Description: "Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season.",
		Price:       75,
		Stock:       7,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Description: "The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons.",
		Price:       200,
		Stock:       5,
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"jacket"},
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
		Description: "Introducing the Tesla Raven Collection. The Men's Raven Lightweight Zip Up Bomber has a premium, modern silhouette made from a sustainable bamboo cotton blend for versatility in any season.",
		Price:       130,
		Stock:       10,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"shirt"},
		Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
	},
	{
		Title:       "Women's Cybertruck Graffiti Hoodie",
		Description: "As with the iconic Tesla logo, the Cybertruck Graffiti Hoodie is a classic in the making.",
		Price:       60,
		Stock:       13,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "women",
		Tags:        []string{"hoodie"},
		Images:      []string{"7654420-00-A_0_2000.jpg", "7654420-00-A_1_2000.jpg"},
	},
	{
		Title:       "Kids Cybertruck Long Sleeve Tee",
		Description: "The Kids Cybertruck Long Sleeve Tee features a water-based Cybertruck graffiti wordmark across the chest.",
		Price:       30,
		Stock:       10,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "kid",
		Tags:        []string{"shirt"},
		Images:      []string{"1742694-00-A_1_2000.jpg", "1742694-00-A_3_2000.jpg"},
	},
	{
		Title:       "Let the Sun Shine Tee",
		Description: "Inspired by the world's most unlimited resource, the Let the Sun Shine Tee highlights our fully integrated home solar and storage system.",
		Price:       35,
		Stock:       15,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "unisex",
		Tags:        []string{"shirt"},
		Images:      []string{"1703767-00-A_0_2000.jpg"},
	},
}
