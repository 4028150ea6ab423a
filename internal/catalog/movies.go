package catalog

import "github.com/Clark-Hu/moviemeter/internal/repository"

const posterBase = "https://image.tmdb.org/t/p/w500/"

var defaultMovies = []repository.MovieCreateParams{
	{Title: "Inception", ReleaseYear: 2010, PosterURL: posterBase + "ljsZTbVsrQSqZgWeep2B1QiDKuh.jpg", DefaultRating: 4.8},
	{Title: "Titanic", ReleaseYear: 1997, PosterURL: posterBase + "9xjZS2rlVxm8SFx8kPC3aIGCOYQ.jpg", DefaultRating: 4.7},
	{Title: "Interstellar", ReleaseYear: 2014, PosterURL: posterBase + "gEU2QniE6E77NI6lCU6MxlNBvIx.jpg", DefaultRating: 4.9},
	{Title: "The Dark Knight", ReleaseYear: 2008, PosterURL: posterBase + "qJ2tW6WMUDux911r6m7haRef0WH.jpg", DefaultRating: 4.9},
	{Title: "Avengers: Endgame", ReleaseYear: 2019, PosterURL: posterBase + "or06FN3Dka5tukK1e9sl16pB3iy.jpg", DefaultRating: 4.7},
	{Title: "The Godfather", ReleaseYear: 1972, PosterURL: posterBase + "3bhkrj58Vtu7enYsRolD1fZdja1.jpg", DefaultRating: 4.9},
	{Title: "Forrest Gump", ReleaseYear: 1994, PosterURL: posterBase + "arw2vcBveWOVZr6pxd9XTd1TdQa.jpg", DefaultRating: 4.8},
	{Title: "The Matrix", ReleaseYear: 1999, PosterURL: posterBase + "f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg", DefaultRating: 4.8},
	{Title: "Gladiator", ReleaseYear: 2000, PosterURL: posterBase + "ty8TGRuvJLPUmAR1H1nRIsgwvim.jpg", DefaultRating: 4.7},
	{Title: "Shawshank Redemption", ReleaseYear: 1994, PosterURL: posterBase + "q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg", DefaultRating: 5.0},
	{Title: "Pulp Fiction", ReleaseYear: 1994, PosterURL: posterBase + "d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg", DefaultRating: 4.8},
	{Title: "The Lord of the Rings: The Return of the King", ReleaseYear: 2003, PosterURL: posterBase + "rCzpDGLbOoPwLjy3OAm5NUPOTrC.jpg", DefaultRating: 4.9},
	{Title: "Fight Club", ReleaseYear: 1999, PosterURL: posterBase + "pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", DefaultRating: 4.7},
	{Title: "The Lion King", ReleaseYear: 1994, PosterURL: posterBase + "sKCr78MXSLixwmZ8DyJLrpMsd15.jpg", DefaultRating: 4.6},
	{Title: "Star Wars: Episode V - The Empire Strikes Back", ReleaseYear: 1980, PosterURL: posterBase + "nNAeTmF4CtdSgMDplXTDPOpYzsX.jpg", DefaultRating: 4.8},
	{Title: "Goodfellas", ReleaseYear: 1990, PosterURL: posterBase + "aKuFiU82s5ISJpGZp7YkIr3kCUd.jpg", DefaultRating: 4.7},
	{Title: "Avatar", ReleaseYear: 2009, PosterURL: posterBase + "jRXYjXNq0Cs2TcJjLkki24MLp7u.jpg", DefaultRating: 4.5},
	{Title: "The Silence of the Lambs", ReleaseYear: 1991, PosterURL: posterBase + "uS9m8OBk1A8eM9I042bx8XXpqAq.jpg", DefaultRating: 4.6},
	{Title: "Saving Private Ryan", ReleaseYear: 1998, PosterURL: posterBase + "uqx37cS8cpHg8U35f9U5IBlrCV3.jpg", DefaultRating: 4.7},
	{Title: "Jurassic Park", ReleaseYear: 1993, PosterURL: posterBase + "b1xCNnyrPebIc7EWNZIa6BYzSGw.jpg", DefaultRating: 4.5},
	{Title: "Terminator 2: Judgment Day", ReleaseYear: 1991, PosterURL: posterBase + "5M0j0B18abtBI5gi2RhfjjurTqb.jpg", DefaultRating: 4.6},
	{Title: "The Departed", ReleaseYear: 2006, PosterURL: posterBase + "nT97ifVT2J1yMQmeq20Qblg61T.jpg", DefaultRating: 4.5},
	{Title: "Spider-Man: No Way Home", ReleaseYear: 2021, PosterURL: posterBase + "1g0dhYtq4irTY1GPXvft6k4YLjm.jpg", DefaultRating: 4.4},
	{Title: "The Prestige", ReleaseYear: 2006, PosterURL: posterBase + "tRNlZbgNCNOpLpbPEz5L8G8A0JN.jpg", DefaultRating: 4.6},
	{Title: "Back to the Future", ReleaseYear: 1985, PosterURL: posterBase + "fNOH9f1aA7XRTzl1sAOx9iF553Q.jpg", DefaultRating: 4.5},
	{Title: "Parasite", ReleaseYear: 2019, PosterURL: posterBase + "7IiTTgloJzvGI1TAYymCfbfl3vT.jpg", DefaultRating: 4.7},
	{Title: "The Avengers", ReleaseYear: 2012, PosterURL: posterBase + "RYMX2wcKCBAr24UyPD7xwmjaTn.jpg", DefaultRating: 4.4},
	{Title: "Whiplash", ReleaseYear: 2014, PosterURL: posterBase + "7fn624j5lj3xTme2SgiLCeuedmO.jpg", DefaultRating: 4.6},
	{Title: "The Green Mile", ReleaseYear: 1999, PosterURL: posterBase + "velWPhVMQeQKcxggNEU8YmIo52R.jpg", DefaultRating: 4.7},
	{Title: "Dune", ReleaseYear: 2021, PosterURL: posterBase + "d5NXSklXo0qyIYkgV94XAgMIckC.jpg", DefaultRating: 4.3},
}
