// Package carprice estimates the price of a used car from its mileage.
//
// The model is the single-feature line
//
//	price = theta0 + theta1 * mileage
//
// fitted by batch gradient descent on a standardized mileage and converted
// back to original units before it is saved.
//
// # Quick Start
//
// Train on a CSV with a "km,price" header, then predict:
//
//	go run ./cmd/train -data data.csv -alpha 0.05 -epochs 20000
//	go run ./cmd/predict
//	Enter a mileage (km): 100000
//	Estimated price: 6354.71€
//
// Fit quality and a plot of the fit are available through cmd/precision and
// cmd/plot.
//
// As a library:
//
//	ds, err := dataset.Load("data.csv", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gd := linear.NewGradientDescent(linear.WithEpochs(20000))
//	if err := gd.Fit(ds.X, ds.Y); err != nil {
//	    log.Fatal(err)
//	}
//	thetas, _ := gd.Thetas()
//	_ = model.Save("thetas.json", thetas)
//
// # Packages
//
//   - dataset: CSV loading into parallel mileage/price slices
//   - preprocessing: mean and population standard deviation, StandardScaler
//   - linear: the gradient descent trainer
//   - core/model: parameters, estimation and the JSON parameter file
//   - metrics: R², MSE, RMSE and MAE
//   - visualize: scatter plus regression line image
//   - pkg/errors: typed errors built on cockroachdb/errors
//   - pkg/log: structured logging on zerolog and log/slog
//
// Configuration for the commands lives in internal/config and may be given as
// a YAML file with -config. Training runs are appended to model_params.txt and,
// with -history, to a SQLite database.
package carprice
