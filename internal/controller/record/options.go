package record

import (
	"time"

	"k8s.io/apimachinery/pkg/util/workqueue"
	"sigs.k8s.io/controller-runtime/pkg/controller"
)

func controllerOptions() controller.Options {
	return controller.Options{
		MaxConcurrentReconciles: recordWorkerCount,
		RateLimiter:             workqueue.NewItemExponentialFailureRateLimiter(1*time.Second, 30*time.Second),
	}
}
