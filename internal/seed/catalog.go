package seed

// Catalog is the curated list of confectionary and kitchen inventory items
// used for demo data.
var Catalog = []string{
	"Sea Salt Caramels",
	"Dark Chocolate Hazelnuts",
	"Milk Chocolate Truffles",
	"Peanut Butter Bites",
	"Sour Raspberry Gummies",
	"Rainbow Lollipops",
	"Mini Marshmallow Packs",
	"Vanilla Fudge Squares",
	"Almond Toffee Crunch",
	"Gummy Bear Mix",
	"Assorted Macarons",
	"Chocolate Covered Espresso Beans",
	"Fruit Leather Strips",
	"Honey Roasted Cashews",
	"Maple Pecan Brittle",
	"Caramel Popcorn Bags",
	"Peppermint Bark",
	"Strawberry Cream Taffy",
	"Chocolate Chip Cookies",
	"Cocoa Powder Tin",
	"Baking Soda Canister",
	"Sea Salt Grinder",
	"Herb Scissors",
	"Stainless Mixing Bowls",
	"Silicone Spatula Set",
	"Cast Iron Skillet",
	"Reusable Piping Bags",
	"Decorative Sprinkles Mix",
	"Vanilla Bean Paste",
	"Organic Cane Sugar",
	"Brownie Mix Pouches",
	"Mini Rolling Pins",
	"Kitchen Shears",
	"Rechargeable Batteries AA (8 pack)",
	"Rechargeable Batteries AAA (8 pack)",
	"Colorful Measuring Spoons",
	"Mini Storage Jars",
	"Ceramic Dessert Plates",
	"Reusable Bento Boxes",
	"Lunch Bag Coolers",
	"Kid-Friendly Water Bottles",
	"Silicone Ice Pop Molds",
	"Chocolate Drizzle Sauce",
	"Butterscotch Syrup",
	"Whipped Cream Chargers",
	"Decorative Gift Tins",
	"Party Favor Bags",
	"Confetti Cupcake Kits",
	"Chocolate Fountain Refills",
}
