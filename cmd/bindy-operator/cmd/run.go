package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/klog/v2"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controller/cluster"
	"github.com/firestoned/bindy/internal/controller/instance"
	"github.com/firestoned/bindy/internal/controller/provider"
	"github.com/firestoned/bindy/internal/controller/record"
	"github.com/firestoned/bindy/internal/controller/zone"
	"github.com/firestoned/bindy/internal/controllerutils"
)

var scheme = runtime.NewScheme()

func init() {
	_ = clientgoscheme.AddToScheme(scheme)
	_ = bindyv1beta1.AddToScheme(scheme)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the controller manager",
	RunE:  runManager,
}

func init() {
	runCmd.Flags().String("metrics-bind-address", ":8443", "address the metrics endpoint binds to")
	runCmd.Flags().String("health-probe-bind-address", ":8081", "address the health probe endpoint binds to")
	_ = viper.BindPFlag("metrics-bind-address", runCmd.Flags().Lookup("metrics-bind-address"))
	_ = viper.BindPFlag("health-probe-bind-address", runCmd.Flags().Lookup("health-probe-bind-address"))

	viper.SetDefault("enable_leader_election", true)
	viper.SetDefault("lease_name", "bindy-operator-leader")
	viper.SetDefault("lease_namespace", "bindy-system")
	viper.SetDefault("lease_duration_seconds", int(controllerutils.DefaultLeaseDuration.Seconds()))
	viper.SetDefault("lease_renew_deadline_seconds", int(controllerutils.DefaultRenewDeadline.Seconds()))
	viper.SetDefault("lease_retry_period_seconds", int(controllerutils.DefaultRetryPeriod.Seconds()))
	viper.SetDefault("resync_schedule", "*/15 * * * *")
}

// klogBridge routes client-go's internal logging (leader election,
// workqueue) through the same logr sink the rest of the process uses,
// instead of klog's own destination (spec's ambient logging stack).
func klogBridge() {
	klog.SetLogger(ctrl.Log.WithName("klog"))
}

func runManager(cmd *cobra.Command, args []string) error {
	klogBridge()
	setupLog := ctrl.Log.WithName("setup")

	leaseNamespace := viper.GetString("lease_namespace")
	if ns := os.Getenv("POD_NAMESPACE"); ns != "" {
		leaseNamespace = ns
	}
	leaseDuration := time.Duration(viper.GetInt("lease_duration_seconds")) * time.Second
	renewDeadline := time.Duration(viper.GetInt("lease_renew_deadline_seconds")) * time.Second
	retryPeriod := time.Duration(viper.GetInt("lease_retry_period_seconds")) * time.Second

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: scheme,
		Metrics: metricsserver.Options{
			BindAddress: viper.GetString("metrics-bind-address"),
		},
		HealthProbeBindAddress:  viper.GetString("health-probe-bind-address"),
		LeaderElection:          viper.GetBool("enable_leader_election"),
		LeaderElectionID:        viper.GetString("lease_name"),
		LeaderElectionNamespace: leaseNamespace,
		LeaseDuration:           &leaseDuration,
		RenewDeadline:           &renewDeadline,
		RetryPeriod:             &retryPeriod,
	})
	if err != nil {
		return fmt.Errorf("starting manager: %w", err)
	}

	metrics := controllerutils.NewControllerMetrics()

	if err := (&provider.Reconciler{Client: mgr.GetClient(), Scheme: mgr.GetScheme(), Metrics: metrics}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("setting up provider controller: %w", err)
	}
	if err := (&cluster.Reconciler{Client: mgr.GetClient(), Scheme: mgr.GetScheme(), Metrics: metrics}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("setting up cluster controller: %w", err)
	}
	if err := (&instance.Reconciler{Client: mgr.GetClient(), Scheme: mgr.GetScheme(), Metrics: metrics}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("setting up instance controller: %w", err)
	}
	if err := (&zone.Reconciler{Client: mgr.GetClient(), Scheme: mgr.GetScheme(), Metrics: metrics, Log: ctrl.Log.WithName("zone")}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("setting up zone controller: %w", err)
	}

	recordReconcilers := []interface{ SetupWithManager(ctrl.Manager) error }{
		record.NewARecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("arecord")),
		record.NewAAAARecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("aaaarecord")),
		record.NewCNAMERecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("cnamerecord")),
		record.NewMXRecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("mxrecord")),
		record.NewTXTRecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("txtrecord")),
		record.NewNSRecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("nsrecord")),
		record.NewSRVRecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("srvrecord")),
		record.NewCAARecordReconciler(mgr.GetClient(), mgr.GetScheme(), metrics, ctrl.Log.WithName("caarecord")),
	}
	for _, rec := range recordReconcilers {
		if err := rec.SetupWithManager(mgr); err != nil {
			return fmt.Errorf("setting up record controller: %w", err)
		}
	}

	scheduler, err := controllerutils.NewResyncScheduler(viper.GetString("resync_schedule"), ctrl.Log, func() {
		triggerFullResync(mgr)
	})
	if err != nil {
		return fmt.Errorf("parsing resync schedule: %w", err)
	}
	if err := mgr.Add(schedulerRunnable{scheduler}); err != nil {
		return fmt.Errorf("registering resync scheduler: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("setting up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("setting up readiness check: %w", err)
	}

	setupLog.Info("starting manager")
	return mgr.Start(ctrl.SetupSignalHandler())
}

// schedulerRunnable adapts ResyncScheduler to manager.Runnable so its
// lifecycle is tied to the manager's (started post-leader-election, stopped
// on shutdown) instead of free-running from init.
type schedulerRunnable struct {
	scheduler *controllerutils.ResyncScheduler
}

func (s schedulerRunnable) Start(ctx context.Context) error {
	s.scheduler.Start()
	<-ctx.Done()
	s.scheduler.Stop()
	return nil
}

// triggerFullResync stamps every DNSZone's last-resync annotation,
// forcing a reconcile independent of watch events (spec §4.9 periodic
// backstop): the annotation write itself is the enqueue mechanism, since
// controller-runtime's workqueue only reacts to object changes.
func triggerFullResync(mgr ctrl.Manager) {
	log := ctrl.Log.WithName("resync-scheduler")
	ctx := context.Background()
	var zones bindyv1beta1.DNSZoneList
	if err := mgr.GetClient().List(ctx, &zones); err != nil {
		log.Error(err, "listing zones for periodic resync")
		return
	}
	for i := range zones.Items {
		z := &zones.Items[i]
		if z.Annotations == nil {
			z.Annotations = map[string]string{}
		}
		z.Annotations[bindyv1beta1.AnnotationLastResync] = time.Now().UTC().Format(time.RFC3339)
		if err := mgr.GetClient().Update(ctx, z); err != nil {
			log.Error(err, "triggering resync", "zone", z.Name, "namespace", z.Namespace)
		}
	}
}
