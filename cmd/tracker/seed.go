package main

import "pricetracker/internal/domain"

// seedTargets is the initial tracked-URL list. Seeding is idempotent, so
// restarting never duplicates rows; new sites are added here before their
// adapter ships and count as skipped until it does.
var seedTargets = []domain.Target{
	{Site: "books.toscrape.com", URL: "https://books.toscrape.com/catalogue/a-light-in-the-attic_1000/index.html", Name: "A Light in the Attic"},
	{Site: "books.toscrape.com", URL: "https://books.toscrape.com/catalogue/william-shakespeares-star-wars-verily-a-new-hope-william-shakespeares-star-wars-4_871/index.html", Name: "William Shakespeare's Star Wars"},
	{Site: "scrapeme.live", URL: "https://scrapeme.live/shop/Poliwhirl", Name: "Poliwhirl"},
	{Site: "scrapeme.live", URL: "https://scrapeme.live/shop/Charmander/", Name: "Charmander"},
	{Site: "scrapeme.live", URL: "https://scrapeme.live/shop/squirtle/", Name: "Squirtle"},
}
